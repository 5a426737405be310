package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Veraticus/haystack/pkg/config"
	"github.com/Veraticus/haystack/pkg/format"
	"github.com/Veraticus/haystack/pkg/input"
	"github.com/Veraticus/haystack/pkg/interfaces"
	"github.com/Veraticus/haystack/pkg/output"
	"github.com/Veraticus/haystack/pkg/pattern"
	"github.com/Veraticus/haystack/pkg/scanner"
)

// Streams are the process streams the application reads and writes.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Dependencies holds all the dependencies for the application
type Dependencies struct {
	Config   *config.Config
	Logger   *logrus.Logger
	Source   interfaces.LineSource
	Trigger  pattern.Pattern
	Anchor   pattern.Pattern
	Scanner  *scanner.Scanner
	Template *format.Template
	Output   *output.Manager
}

// NewDependencies creates all dependencies with the given configuration. A
// nil second pattern makes every trigger line a result.
func NewDependencies(cfg *config.Config, streams Streams, first string, second *string) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: newLogger(streams.Stderr, cfg.Debug),
	}

	var err error
	if deps.Trigger, err = resolvePattern(cfg, first); err != nil {
		return nil, fmt.Errorf("invalid first pattern: %w", err)
	}
	if second != nil {
		if deps.Anchor, err = resolvePattern(cfg, *second); err != nil {
			return nil, fmt.Errorf("invalid second pattern: %w", err)
		}
	}

	deps.Logger.WithFields(logrus.Fields{
		"first":    describe(deps.Trigger),
		"second":   describe(deps.Anchor),
		"forwards": cfg.Forwards,
		"instant":  cfg.Instant,
		"jobs":     cfg.Jobs,
	}).Debug("configured search")

	deps.Source = input.NewFileSource(streams.Stdin, deps.Logger)
	deps.Scanner = scanner.New(deps.Trigger, deps.Anchor, scanner.Options{
		Forward:    cfg.Forwards,
		MaxResults: cfg.MaxResults,
		Context:    cfg.Context,
		Logger:     deps.Logger,
	})

	renderer := format.NewRenderer(streams.Stdout, cfg.NoColor)
	deps.Template = format.Parse(format.Unescape(cfg.OutputFormat), renderer)
	deps.Output = output.NewManager(deps.Template, output.NewStreamWriter(streams.Stdout), output.Options{
		Instant: cfg.Instant,
		Newline: !deps.Template.EndsWithNewline(),
	})

	return deps, nil
}

// newLogger logs warnings to w, or everything when debug is set.
func newLogger(w io.Writer, debug bool) *logrus.Logger {
	log := logrus.New()
	if w == nil {
		w = io.Discard
	}
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors: !format.IsTerminal(w),
		FullTimestamp: true,
	})
	log.SetLevel(logrus.WarnLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// resolvePattern parses a pattern argument. @name refers to a preset from the
// configuration.
func resolvePattern(cfg *config.Config, spec string) (pattern.Pattern, error) {
	if name, ok := strings.CutPrefix(spec, "@"); ok {
		preset, found := cfg.Lookup(name)
		if !found {
			return nil, fmt.Errorf("unknown pattern preset %q", name)
		}
		spec = preset.Spec
	}

	p, err := pattern.Parse(spec, cfg.BaseFlags())
	if err != nil {
		return nil, err
	}
	if fixed, ok := p.(*pattern.Fixed); ok && cfg.Typos {
		re, err := pattern.NewTypoRegex(fixed.String(), fixed.Flags())
		if err != nil {
			return nil, err
		}
		return re, nil
	}
	return p, nil
}

func describe(p pattern.Pattern) string {
	if p == nil {
		return ""
	}
	return p.Spec()
}

// Application represents the main application
type Application struct {
	deps *Dependencies
}

// NewApplication creates a new application with the given dependencies
func NewApplication(deps *Dependencies) *Application {
	return &Application{
		deps: deps,
	}
}

// Run scans files, or standard input when there are none, and returns the
// number of results. In collected mode up to Config.Jobs files are scanned
// at once; output still follows the order of files.
func (a *Application) Run(files []string) (int, error) {
	if len(files) == 0 {
		files = []string{input.Stdin}
	}

	jobs := a.deps.Config.Jobs
	if a.deps.Config.Instant || jobs < 1 {
		jobs = 1
	}
	jobs = min(jobs, len(files))

	errs := make([]error, len(files))
	work := make(chan int)
	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for slot := range work {
				errs[slot] = a.scanFile(slot, files[slot])
			}
		}()
	}
	for slot := range files {
		work <- slot
	}
	close(work)
	wg.Wait()

	return a.deps.Output.Count(), errors.Join(errs...)
}

func (a *Application) scanFile(slot int, file string) error {
	log := a.deps.Logger.WithField("file", file)
	lines := a.deps.Source.Lines(file)
	log.WithField("lines", len(lines)).Debug("scanning")

	h := a.deps.Output.Open(slot, file)
	var writeErr error
	for rec := range a.deps.Scanner.Records(file, lines) {
		if err := h.HandleRecord(file, rec); err != nil {
			writeErr = fmt.Errorf("failed to write results for %s: %w", file, err)
			break
		}
	}

	if err := a.deps.Output.Close(slot); err != nil && writeErr == nil {
		writeErr = fmt.Errorf("failed to write results for %s: %w", file, err)
	}
	return writeErr
}
