package main

import (
	"testing"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
)

func TestNormalizeEventTypes(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []srcdslog.EventType
		wantErr bool
	}{
		{
			name:    "empty input",
			input:   nil,
			want:    nil,
			wantErr: false,
		},
		{
			name:    "single valid type",
			input:   []string{"chat"},
			want:    []srcdslog.EventType{srcdslog.EventChat},
			wantErr: false,
		},
		{
			name:    "multiple valid types",
			input:   []string{"chat", "player_connected", "map_started"},
			want:    []srcdslog.EventType{srcdslog.EventChat, srcdslog.EventPlayerConnected, srcdslog.EventMapStarted},
			wantErr: false,
		},
		{
			name:    "case insensitive",
			input:   []string{"CHAT", "Player_Connected"},
			want:    []srcdslog.EventType{srcdslog.EventChat, srcdslog.EventPlayerConnected},
			wantErr: false,
		},
		{
			name:    "with whitespace",
			input:   []string{" chat ", "  rcon  "},
			want:    []srcdslog.EventType{srcdslog.EventChat, srcdslog.EventRcon},
			wantErr: false,
		},
		{
			name:    "duplicates removed",
			input:   []string{"chat", "chat", "rcon"},
			want:    []srcdslog.EventType{srcdslog.EventChat, srcdslog.EventRcon},
			wantErr: false,
		},
		{
			name:    "invalid type",
			input:   []string{"invalid_type"},
			want:    nil,
			wantErr: true,
		},
		{
			name:    "mixed valid and invalid",
			input:   []string{"chat", "invalid"},
			want:    nil,
			wantErr: true,
		},
		{
			name:    "empty string error",
			input:   []string{""},
			want:    nil,
			wantErr: true,
		},
		{
			name:    "whitespace only error",
			input:   []string{"   "},
			want:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeEventTypes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NormalizeEventTypes() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if len(got) != len(tt.want) {
					t.Errorf("NormalizeEventTypes() len = %v, want %v", len(got), len(tt.want))
					return
				}
				for i := range got {
					if got[i] != tt.want[i] {
						t.Errorf("NormalizeEventTypes()[%d] = %v, want %v", i, got[i], tt.want[i])
					}
				}
			}
		})
	}
}

func TestRejectOverlap(t *testing.T) {
	tests := []struct {
		name     string
		includes []srcdslog.EventType
		excludes []srcdslog.EventType
		wantErr  bool
	}{
		{
			name:     "no overlap",
			includes: []srcdslog.EventType{srcdslog.EventChat},
			excludes: []srcdslog.EventType{srcdslog.EventRcon},
			wantErr:  false,
		},
		{
			name:     "empty lists",
			includes: nil,
			excludes: nil,
			wantErr:  false,
		},
		{
			name:     "overlap",
			includes: []srcdslog.EventType{srcdslog.EventChat, srcdslog.EventRcon},
			excludes: []srcdslog.EventType{srcdslog.EventChat},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RejectOverlap(tt.includes, tt.excludes)
			if (err != nil) != tt.wantErr {
				t.Errorf("RejectOverlap() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
