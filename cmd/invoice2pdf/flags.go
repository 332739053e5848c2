package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	envFile string
	quiet   bool
	verbose bool
}

// storeFlags selects the template store.
type storeFlags struct {
	driver string
	dir    string
}

// renderSettingsFlags holds renderer settings shared by render and serve.
type renderSettingsFlags struct {
	preset           string
	template         string
	pageSize         string
	dateFormat       string
	currency         string
	compress         bool
	logoDir          string
	allowRemoteLogos bool
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common   commonFlags
	store    storeFlags
	settings renderSettingsFlags
	output   string
	workers  int
	account  string
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common        commonFlags
	store         storeFlags
	settings      renderSettingsFlags
	addr          string
	metrics       bool
	maxConcurrent int
}

// templateFlags holds all flags for the template command.
type templateFlags struct {
	preset string
	check  string
	list   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "load INVOICE2PDF_* variables from a .env file")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addStoreFlags adds template store flags to a FlagSet.
func addStoreFlags(fs *flag.FlagSet, f *storeFlags) {
	fs.StringVar(&f.driver, "store", "", "template store: file, postgres, supabase")
	fs.StringVar(&f.dir, "store-dir", "", "template directory for the file store")
}

// addRenderSettingsFlags adds renderer settings to a FlagSet.
func addRenderSettingsFlags(fs *flag.FlagSet, f *renderSettingsFlags) {
	fs.StringVar(&f.preset, "preset", "", "default template preset name")
	fs.StringVar(&f.template, "template", "", "default template YAML file")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: a4, a5, letter, legal")
	fs.StringVar(&f.dateFormat, "date-format", "", "date format preset or tokens")
	fs.StringVar(&f.currency, "currency", "", "currency symbol (default: R)")
	fs.BoolVar(&f.compress, "compress", false, "compress PDF streams")
	fs.StringVar(&f.logoDir, "logo-dir", "", "base directory for logo file references")
	fs.BoolVar(&f.allowRemoteLogos, "allow-remote-logos", false, "fetch http(s) logo references")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	fs := newFlagSet("render", printRenderUsage, w)

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.account, "account", "a", "", "account whose stored template is used")
	addCommonFlags(fs, &f.common)
	addStoreFlags(fs, &f.store)
	addRenderSettingsFlags(fs, &f.settings)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newFlagSet("serve", printServeUsage, w)

	fs.StringVar(&f.addr, "addr", "", "listen address (default :8080)")
	fs.BoolVar(&f.metrics, "metrics", false, "serve Prometheus metrics on /metrics")
	fs.IntVar(&f.maxConcurrent, "max-concurrent", 0, "simultaneous renders (0 = default)")
	addCommonFlags(fs, &f.common)
	addStoreFlags(fs, &f.store)
	addRenderSettingsFlags(fs, &f.settings)

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, nil
}

// parseTemplateFlags parses template command flags.
func parseTemplateFlags(args []string, w io.Writer) (*templateFlags, error) {
	f := &templateFlags{}
	fs := newFlagSet("template", printTemplateUsage, w)

	fs.StringVar(&f.preset, "preset", "", "print this preset instead of the built-in defaults")
	fs.StringVar(&f.check, "check", "", "validate a template YAML file")
	fs.BoolVar(&f.list, "list", false, "list preset names")

	if err := parse(fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	return f, nil
}

// parse runs fs.Parse, classifying failures as usage errors.
// flag.ErrHelp is returned unwrapped.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
