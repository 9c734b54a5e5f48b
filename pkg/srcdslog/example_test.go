package srcdslog_test

import (
	"fmt"
	"log"

	"github.com/srcdslog/srcdslog-go/pkg/srcdslog"
)

func ExampleParseLine() {
	line := []byte(`L 02/09/2024 - 08:01:13: "Alice<6><[U:1:1324124512]><Blue>" say "gg"`)

	ev, err := srcdslog.ParseLine(line)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(ev.Type)
	fmt.Println(ev.Player.Name)
	fmt.Println(ev.Message)
	// Output:
	// chat
	// Alice
	// gg
}

func ExampleClassify() {
	ev := srcdslog.Classify(`Started map "koth_highpass" (CRC "505b4fbf2a1661d2fb1b96f444ef268c")`)

	fmt.Println(ev.Type)
	fmt.Println(ev.Map)
	// Output:
	// map_started
	// koth_highpass
}

func ExampleClassify_unrecognized() {
	// Classification is total: an unknown body is an event, not an error.
	ev := srcdslog.Classify(`[SM] Loaded plugin mgemod.smx`)

	fmt.Println(ev.Type)
	fmt.Println(ev.IsUnrecognized())
	// Output:
	// unrecognized
	// true
}

func ExampleDecodeLine() {
	// A UDP datagram with the transport prefix and an sv_logsecret header.
	line := append([]byte{0xFF, 0xFF, 0xFF, 0xFF, 'S', 'n', 'y', 'a'},
		[]byte(`L 02/09/2024 - 08:00:50: Log file closed`)...)

	frame, err := srcdslog.DecodeLine(line)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(frame.Secret)
	fmt.Println(frame.Message)
	// Output:
	// nya
	// Log file closed
}
