// Package main is the entry point for the rtttl CLI.
//
// Usage:
//
//	rtttl [flags] <command> [args]
//
// Commands:
//
//	play     - Play a ringtone on a speaker, serial tone generator, or PWM channel
//	export   - Render a ringtone to a WAV file
//	inspect  - Print the parsed notes of a ringtone
//	songs    - List the available songs
package main

import (
	"fmt"
	"os"

	"github.com/mfinkle/rtttl-go/cmd/rtttl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
