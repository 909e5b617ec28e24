/*
Zili starts an interactive ZIL interpreter session.

It reads in a ZIL source file (and whatever it includes via INSERT-FILE),
loads the world it defines, and starts the game at its initial position. The
interpreter prints what is happening in the game to stdout and reads player
input from stdin until the game ends or a quit command is given.

Usage:

	zili [flags] <source-file>

The flags are:

	-v, --version
		Give the current version of the interpreter and then exit.

	-d, --direct
		Force reading directly from the console as opposed to using GNU
		readline based routines for reading command input, even if launched
		in a tty with stdin and stdout.

	-j, --json
		Emit one JSON object per line instead of free-form text, for
		programmatic consumption.

	-c, --command COMMANDS
		Immediately run the given command(s) at start. Can be multiple
		commands separated by the ";" character.

Once a session has started, the user's input is parsed for the loaded game's
commands. To exit the interpreter, type "QUIT", "EXIT", or "Q".
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dekarrin/zil"
	"github.com/dekarrin/zil/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitInitError indicates an unsuccessful program execution due to an
	// issue loading the world or initializing the engine (file not found,
	// parse error, circular include).
	ExitInitError

	// ExitGameError indicates an unsuccessful program execution due to a
	// problem while running the game.
	ExitGameError
)

var (
	returnCode   int     = ExitSuccess
	flagVersion  *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	forceDirect  *bool   = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible")
	jsonMode     *bool   = pflag.BoolP("json", "j", false, "Emit one JSON object per line instead of free-form text")
	startCommand *string = pflag.StringP("command", "c", "", "Execute the given player commands immediately at start and leave the interpreter open")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: no source file given")
		returnCode = ExitInitError
		return
	}
	sourceFile := pflag.Arg(0)

	var startCommands []string
	if *startCommand != "" {
		startCommands = strings.Split(*startCommand, ";")
	}

	gameEng, initErr := zil.New(os.Stdin, os.Stdout, sourceFile, *forceDirect, *jsonMode)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer gameEng.Close()

	if err := gameEng.RunUntilQuit(startCommands); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGameError
		return
	}
}
