package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	invoice2pdf "github.com/alnah/go-invoice2pdf"
	"github.com/alnah/go-invoice2pdf/internal/config"
	"github.com/alnah/go-invoice2pdf/internal/fileutil"
	"github.com/alnah/go-invoice2pdf/internal/hints"
	"github.com/alnah/go-invoice2pdf/internal/model"
	"github.com/alnah/go-invoice2pdf/internal/yamlutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// PDFRenderer is the interface for the rendering service.
type PDFRenderer interface {
	Render(ctx context.Context, in invoice2pdf.Input) ([]byte, error)
}

// Compile-time interface implementation check.
var _ PDFRenderer = (*invoice2pdf.Renderer)(nil)

// contentFile is the on-disk shape of a content file: the invoice content
// plus optional per-file practice details and logo reference.
type contentFile struct {
	Practice    *model.Party      `yaml:"practice"`
	Logo        string            `yaml:"logo"`
	Invoice     model.Invoice     `yaml:"invoice"`
	Matter      *model.Matter     `yaml:"matter"`
	TimeEntries []model.TimeEntry `yaml:"timeEntries"`
	Expenses    []model.Expense   `yaml:"expenses"`
	Services    []model.Service   `yaml:"services"`
}

// renderJob describes the inputs shared by a batch.
type renderJob struct {
	root     string // input directory, empty for a single file
	outDir   string
	account  string
	practice model.Party
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// runRenderCmd parses flags, loads configuration and renders every input.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, env.Stderr)
	if err != nil {
		return err
	}
	mergeSettings(flags.settings, flags.store, cfg)
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if flags.workers > 0 {
		cfg.Render.Workers = flags.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := loggerFor(env.Stderr, flags.common)

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		return err
	}
	files, err := fileutil.FindContentFiles(inputPath)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	ts, closeStore, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	renderer, err := buildRenderer(cfg, ts, logger, invoice2pdf.WithClock(env.Now))
	if err != nil {
		return err
	}

	job := renderJob{
		outDir:   cfg.Output.DefaultDir,
		account:  flags.account,
		practice: cfg.Practice,
	}
	if info, err := os.Stat(inputPath); err == nil && info.IsDir() {
		job.root = inputPath
	}

	workers := resolveWorkers(cfg.Render.Workers)
	logger.Debug("rendering", "files", len(files), "workers", workers)

	results := renderBatch(ctx, renderer, files, job, workers)
	failed := printResults(results, flags.common, env, logger)
	if len(results) == 1 {
		return results[0].Err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d render(s) failed", failed, len(results))
	}
	return nil
}

// resolveInputPath determines the input path from args.
func resolveInputPath(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrNoInput
	}
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
	return args[0], nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveWorkers determines the batch concurrency.
// Priority: explicit setting > GOMAXPROCS-based calculation.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n = runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}

// renderTask is one planned render: the decoded input and the output path
// reserved for it, or the error that stopped planning.
type renderTask struct {
	path   string
	in     invoice2pdf.Input
	output string
	err    error
}

// planBatch loads every file in input order and reserves a distinct output
// path for each. Names come from the document kind and number; when two
// inputs map to the same path, later ones get the input file's stem
// appended, then a counter.
func planBatch(files []string, job renderJob) []renderTask {
	tasks := make([]renderTask, len(files))
	taken := make(map[string]bool, len(files))

	for i, path := range files {
		tasks[i].path = path
		in, err := loadContent(path)
		if err != nil {
			tasks[i].err = err
			continue
		}
		if in.Practice.Name == "" {
			in.Practice = job.practice
		}
		in.AccountID = job.account
		tasks[i].in = in

		name := invoice2pdf.FilenameFor(in.Content.Invoice.Kind, in.Content.Invoice.Number)
		out := fileutil.OutputPath(job.root, path, job.outDir, name)
		if taken[out] {
			out = uniqueOutput(out, path, taken)
		}
		taken[out] = true
		tasks[i].output = out
	}
	return tasks
}

// uniqueOutput derives a free variant of out from the input's stem.
func uniqueOutput(out, input string, taken map[string]bool) string {
	ext := filepath.Ext(out)
	base := strings.TrimSuffix(out, ext)
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	candidate := base + "_" + stem + ext
	for n := 2; taken[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%s-%d%s", base, stem, n, ext)
	}
	return candidate
}

// renderBatch renders files concurrently with up to workers goroutines.
// Results are returned in input order, and no two results share an output
// path.
func renderBatch(ctx context.Context, r PDFRenderer, files []string, job renderJob, workers int) []RenderResult {
	if len(files) == 0 {
		return nil
	}
	if workers > len(files) {
		workers = len(files)
	}
	if workers < 1 {
		workers = 1
	}

	tasks := planBatch(files, job)
	results := make([]RenderResult, len(tasks))
	var wg sync.WaitGroup
	jobs := make(chan int, len(tasks))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{InputPath: files[idx], Err: err}
					continue
				}
				results[idx] = renderFile(ctx, r, tasks[idx])
			}
		}()
	}

	for i := range tasks {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile renders a single planned task and writes the PDF.
func renderFile(ctx context.Context, r PDFRenderer, task renderTask) RenderResult {
	start := time.Now()
	result := RenderResult{InputPath: task.path}
	finish := func(err error) RenderResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	if task.err != nil {
		return finish(task.err)
	}

	pdf, err := r.Render(ctx, task.in)
	if err != nil {
		return finish(err)
	}

	result.OutputPath = task.output
	if err := os.MkdirAll(filepath.Dir(result.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}
	if err := fileutil.WriteFileAtomic(result.OutputPath, pdf, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWritePDF, err))
	}
	return finish(nil)
}

// loadContent reads a YAML or JSON content file into a render input.
// Files over the YAML size cap are rejected as unparsable.
func loadContent(path string) (invoice2pdf.Input, error) {
	var f contentFile
	if err := yamlutil.ReadFile(path, &f, true); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return invoice2pdf.Input{}, fmt.Errorf("%w: %w", ErrReadContent, err)
		}
		return invoice2pdf.Input{}, fmt.Errorf("%w: %s: %w%s", ErrParseContent, path, err, hints.ForContentParse())
	}

	in := invoice2pdf.Input{
		Content: model.Content{
			Invoice:     f.Invoice,
			Matter:      f.Matter,
			TimeEntries: f.TimeEntries,
			Expenses:    f.Expenses,
			Services:    f.Services,
		},
		LogoRef: strings.TrimSpace(f.Logo),
	}
	if f.Practice != nil {
		in.Practice = *f.Practice
	}
	return in, nil
}

// printResults outputs render results and returns the failure count.
func printResults(results []RenderResult, f commonFlags, env *Environment, logger *log.Logger) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			if len(results) > 1 {
				logger.Error("render failed", "input", r.InputPath, "err", r.Err)
			}
			continue
		}
		if f.quiet {
			continue
		}
		if f.verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !f.quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", len(results)-failed, failed)
	}
	return failed
}
