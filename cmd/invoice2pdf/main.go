package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	// Configure GOMAXPROCS before any worker starts. The adjustment is only
	// reported with --verbose; maxprocs.Set fails only on an invalid
	// GOMAXPROCS value, in which case the runtime default applies.
	level := log.InfoLevel
	if hasVerboseFlag(os.Args) {
		level = log.DebugLevel
	}
	_, _ = maxprocs.Set(maxprocs.Logger(newLogger(env.Stderr, level).Debugf))

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// runMain dispatches to a command and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	var err error
	switch cmd {
	case "render":
		err = runRenderCmd(ctx, rest, env)
	case "serve":
		err = runServeCmd(ctx, rest, env)
	case "template":
		err = runTemplateCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "go-invoice2pdf %s\n", Version)
	case "help", "-h", "--help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

// hasVerboseFlag reports whether args request verbose output before flags
// are parsed by a command.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
