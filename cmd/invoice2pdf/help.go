package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render invoice content files to PDF")
	fmt.Fprintln(w, "  serve      Run the HTTP API")
	fmt.Fprintln(w, "  template   Print, list or check templates")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'invoice2pdf help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags shared by render and serve.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Template:")
	fmt.Fprintln(w, "      --preset <name>       Default template preset")
	fmt.Fprintln(w, "      --template <path>     Default template YAML file")
	fmt.Fprintln(w, "      --store <driver>      Template store: file, postgres, supabase")
	fmt.Fprintln(w, "      --store-dir <path>    Directory for the file store")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4, a5, letter, legal")
	fmt.Fprintln(w, "      --date-format <s>     Date format (default: DD MMMM YYYY)")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets: iso, long, short, compact")
	fmt.Fprintln(w, "      --currency <s>        Currency symbol (default: R)")
	fmt.Fprintln(w, "      --compress            Compress PDF streams")
	fmt.Fprintln(w, "      --logo-dir <path>     Base directory for logo files")
	fmt.Fprintln(w, "      --allow-remote-logos  Fetch http(s) logos")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>     Load INVOICE2PDF_* variables from a .env file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render invoice content files (YAML or JSON) to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Content file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: next to input)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -a, --account <id>        Use this account's stored template")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP API.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>    Listen address (default: :8080)")
	fmt.Fprintln(w, "      --metrics             Serve Prometheus metrics on /metrics")
	fmt.Fprintln(w, "      --max-concurrent <n>  Simultaneous renders (default: 8)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printTemplateUsage prints usage for the template command.
func printTemplateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: invoice2pdf template [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the built-in template as YAML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --preset <name>       Print a preset instead")
	fmt.Fprintln(w, "      --list                List preset names")
	fmt.Fprintln(w, "      --check <path>        Validate a template file")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "template":
		printTemplateUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: invoice2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
