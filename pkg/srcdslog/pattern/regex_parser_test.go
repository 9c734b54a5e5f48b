package pattern_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
	"github.com/srcdslog/srcdslog-go/pkg/srcdslog/pattern"
)

func mustParser(t *testing.T, yaml string) *pattern.RegexParser {
	t.Helper()
	pf, err := pattern.LoadBytes([]byte(yaml))
	require.NoError(t, err)
	p, err := pattern.NewRegexParser(pf)
	require.NoError(t, err)
	return p
}

func TestNewRegexParser_InvalidRegex(t *testing.T) {
	pf, err := pattern.Load("testdata/invalid_regex.yaml")
	require.NoError(t, err)

	_, err = pattern.NewRegexParser(pf)
	require.Error(t, err)
	var patErr *pattern.PatternError
	require.True(t, errors.As(err, &patErr))
	assert.Equal(t, "broken", patErr.ID)
}

func TestNewRegexParser_NilFile(t *testing.T) {
	_, err := pattern.NewRegexParser(nil)
	require.Error(t, err)
}

func TestRegexParser_ParseLine(t *testing.T) {
	p := mustParser(t, `version: 1
patterns:
  - id: sm_plugin_loaded
    event_type: plugin_loaded
    regex: '\[SM\] Loaded plugin (?P<plugin>\S+)'
`)

	line := []byte(`L 02/09/2024 - 08:00:51: [SM] Loaded plugin mgemod.smx`)
	result, err := p.ParseLine(context.Background(), line)
	require.NoError(t, err)
	require.True(t, result.Matched)
	require.Len(t, result.Events, 1)

	ev := result.Events[0]
	assert.Equal(t, srcdslog.EventType("plugin_loaded"), ev.Type)
	assert.Equal(t, map[string]string{"plugin": "mgemod.smx"}, ev.Data)

	want, err := time.ParseInLocation("01/02/2006 - 15:04:05", "02/09/2024 - 08:00:51", time.Local)
	require.NoError(t, err)
	assert.True(t, ev.Timestamp.Equal(want))
}

func TestRegexParser_CarriesSecret(t *testing.T) {
	p := mustParser(t, `version: 1
patterns:
  - id: anything
    event_type: anything
    regex: 'plugin'
`)

	line := append([]byte{0xFF, 0xFF, 0xFF, 0xFF, 'S', 'n', 'y', 'a'},
		[]byte(`L 02/09/2024 - 08:00:51: [SM] plugin output`)...)
	result, err := p.ParseLine(context.Background(), line)
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, "nya", result.Events[0].Secret)
}

func TestRegexParser_NoMatch(t *testing.T) {
	p := mustParser(t, `version: 1
patterns:
  - id: never
    event_type: never
    regex: 'will not appear'
`)

	result, err := p.ParseLine(context.Background(), []byte(`L 02/09/2024 - 08:00:51: something else`))
	require.NoError(t, err)
	assert.False(t, result.Matched)
	assert.Empty(t, result.Events)
}

func TestRegexParser_BadFraming(t *testing.T) {
	p := mustParser(t, `version: 1
patterns:
  - id: anything
    event_type: anything
    regex: '.*'
`)

	_, err := p.ParseLine(context.Background(), []byte(`no marker here`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, srcdslog.ErrNoLineMarker))
}

func TestRegexParser_MultipleMatches(t *testing.T) {
	p := mustParser(t, `version: 1
patterns:
  - id: first
    event_type: first_event
    regex: 'shared'
  - id: second
    event_type: second_event
    regex: 'shared (?P<word>\w+)'
`)

	result, err := p.ParseLine(context.Background(), []byte(`L 02/09/2024 - 08:00:51: shared text`))
	require.NoError(t, err)
	require.Len(t, result.Events, 2)
	assert.Equal(t, srcdslog.EventType("first_event"), result.Events[0].Type)
	assert.Nil(t, result.Events[0].Data)
	assert.Equal(t, srcdslog.EventType("second_event"), result.Events[1].Type)
	assert.Equal(t, map[string]string{"word": "text"}, result.Events[1].Data)
}

func TestRegexParser_InChainAfterDefault(t *testing.T) {
	p := mustParser(t, `version: 1
patterns:
  - id: sm_line
    event_type: sm_line
    regex: '\[SM\]'
`)

	chain := &srcdslog.ParserChain{
		Mode:    srcdslog.ChainFirst,
		Parsers: []srcdslog.Parser{srcdslog.DefaultParser{}, p},
	}

	// Built-in grammar wins for lines it recognizes.
	result, err := chain.ParseLine(context.Background(), []byte(`L 02/09/2024 - 08:00:50: Log file closed`))
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, srcdslog.EventLogClosed, result.Events[0].Type)

	// Pattern parser picks up what the grammar leaves unrecognized.
	result, err = chain.ParseLine(context.Background(), []byte(`L 02/09/2024 - 08:00:51: [SM] Loaded plugin mgemod.smx`))
	require.NoError(t, err)
	require.Len(t, result.Events, 1)
	assert.Equal(t, srcdslog.EventType("sm_line"), result.Events[0].Type)
}
