package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"

	"github.com/Veraticus/haystack/pkg/config"
)

// Version is overridden at build time.
var Version = "dev"

// options holds the command line flags.
type options struct {
	first      string
	second     string
	format     string
	instant    bool
	forwards   bool
	noColor    bool
	maxResults int
	noContext  bool
	icase      bool
	whole      bool
	typos      bool
	jobs       int
	configPath string
	debug      bool
}

func main() {
	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "haystack: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "haystack --first PATTERN [--second PATTERN] [files...]",
		Short: "Correlate lines matching one pattern with nearby lines matching another",
		Long: `haystack finds every line matching the first pattern and pairs it with the
nearest line matching the second pattern, searching backwards by default.

Patterns are fixed strings, or regular expressions written as /body/flags with
flags i (ignore case), m (multi-line), d (dot matches newline), u (unicode),
v (verbose), w (whole line) and a:N (approximate, N edits allowed). Named
captures such as (?P<id>\d+) can be used in the output format as {id}.
@name uses a pattern defined in the config file.

Without a second pattern haystack prints the matching lines like grep. Without
files it reads standard input.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, files []string) error {
			cfg, err := config.LoadFrom(opts.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd.Flags(), &opts, cfg)

			var second *string
			if cmd.Flags().Changed("second") {
				second = &opts.second
			}

			deps, err := NewDependencies(cfg, Streams{Stdin: stdin, Stdout: stdout, Stderr: stderr}, opts.first, second)
			if err != nil {
				return err
			}

			_, err = NewApplication(deps).Run(files)
			return err
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.first, "first", "", "Trigger pattern to search for (fixed string or /regex/flags)")
	flags.StringVar(&opts.second, "second", "", "Anchor pattern to correlate each trigger with; omit to print triggers only")
	flags.StringVarP(&opts.format, "output-format", "o", "", "Output format, e.g. {file}:{first_line_num} {first_line:red}")
	flags.BoolVarP(&opts.instant, "instant", "i", false, "Print results as soon as they are found")
	flags.BoolVarP(&opts.forwards, "forwards", "f", false, "Search for the anchor after the trigger instead of before it")
	flags.BoolVarP(&opts.noColor, "no-color", "n", false, "Disable colour in the output")
	flags.IntVarP(&opts.maxResults, "max-results", "r", -1, "Only find the first N results from each file")
	flags.BoolVar(&opts.noContext, "no-context", false, "Do not collect the {context} field")
	flags.BoolVar(&opts.icase, "icase", false, "Match every pattern case-insensitively")
	flags.BoolVar(&opts.whole, "whole", false, "Require every pattern to match the whole line")
	flags.BoolVar(&opts.typos, "typos", false, "Let fixed-string patterns match common misspellings")
	flags.IntVarP(&opts.jobs, "jobs", "j", 1, "Number of files to scan concurrently when not in instant mode")
	flags.StringVar(&opts.configPath, "config", "", "Path to config file")
	flags.BoolVar(&opts.debug, "debug", false, "Log debug output to stderr")
	_ = rootCmd.MarkFlagRequired("first")

	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of haystack",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	})

	return rootCmd
}

// applyFlags overrides configuration with the flags given on the command line.
func applyFlags(fs *flag.FlagSet, opts *options, cfg *config.Config) {
	if fs.Changed("output-format") {
		cfg.OutputFormat = opts.format
	}
	if fs.Changed("instant") {
		cfg.Instant = opts.instant
	}
	if fs.Changed("forwards") {
		cfg.Forwards = opts.forwards
	}
	if fs.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
	if fs.Changed("max-results") {
		cfg.MaxResults = opts.maxResults
	}
	if fs.Changed("no-context") {
		cfg.Context = !opts.noContext
	}
	if fs.Changed("icase") {
		cfg.IgnoreCase = opts.icase
	}
	if fs.Changed("whole") {
		cfg.Whole = opts.whole
	}
	if fs.Changed("typos") {
		cfg.Typos = opts.typos
	}
	if fs.Changed("jobs") {
		cfg.Jobs = opts.jobs
	}
	if fs.Changed("debug") {
		cfg.Debug = opts.debug
	}
}
