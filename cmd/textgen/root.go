package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/CTAG07/textgen/pkg/markov"
	"github.com/CTAG07/textgen/pkg/templating"
	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"
)

var errNoFiles = errors.New("no files provided")

// rootArgs is the root command arguments.
type rootArgs struct {
	configPath   string
	logLevel     string
	logFormat    string
	store        string
	seed         uint64
	placeholder  string
	start        string
	maxWords     int
	templatePath string
	outputPath   string
}

// templateData is passed to --template templates.
type templateData struct {
	Start    string
	MaxWords int
	Files    []string
}

func requireFiles(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errNoFiles
	}
	return nil
}

// newRootCmd builds the textgen command tree. Each call returns fresh
// flag state.
func newRootCmd() *cobra.Command {
	args := &rootArgs{}
	defaults := DefaultConfig()

	cmd := &cobra.Command{
		Use:   "textgen [flags] FILE...",
		Short: "Generate text from a Markov chain trained on files",
		Long: `
Trains a word-level Markov chain on the given files and prints text
generated from it.

Sentence ends in the input become random punctuation followed by a
line break in the output.
	`,
		Args: requireFiles,
		RunE: func(cmd *cobra.Command, files []string) error {
			cmd.SilenceUsage = true
			return runGenerate(cmd, args, files)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&args.configPath, "config", "", "YAML config file, created with defaults if missing")
	pf.StringVar(&args.logLevel, "log-level", defaults.Log.Level, "log level: debug, info, warn or error")
	pf.StringVar(&args.logFormat, "log-format", defaults.Log.Format, "log format: text, charm or json")
	pf.StringVar(&args.store, "store", defaults.Generation.Store, "transition store: memory or sqlite (in-memory database)")
	pf.Uint64Var(&args.seed, "seed", 0, "random seed for reproducible output, 0 for random")
	pf.StringVar(&args.placeholder, "placeholder", defaults.Generation.Placeholder, "text printed in place of a missing start word")

	f := cmd.Flags()
	f.StringVarP(&args.start, "start", "s", "", "word to start generating from")
	f.IntVarP(&args.maxWords, "max-words", "n", defaults.Generation.MaxWords, "number of words to generate")
	f.StringVarP(&args.templatePath, "template", "t", "", "render this text/template file instead of plain output")
	f.StringVarP(&args.outputPath, "output", "o", "", "write output to this file instead of stdout")

	cmd.AddCommand(newStatsCmd(args))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// loadSettings resolves the configuration file and flag overrides and
// builds the logger. Flags win over file values.
func loadSettings(cmd *cobra.Command, args *rootArgs) (*Config, *slog.Logger, error) {
	cfg := DefaultConfig()
	var created bool
	if args.configPath != "" {
		var err error
		if cfg, created, err = LoadConfig(args.configPath); err != nil {
			return nil, nil, err
		}
	}

	if flagChanged(cmd, "log-level") {
		cfg.Log.Level = args.logLevel
	}
	if flagChanged(cmd, "log-format") {
		cfg.Log.Format = args.logFormat
	}
	if flagChanged(cmd, "store") {
		cfg.Generation.Store = args.store
	}
	if flagChanged(cmd, "seed") {
		cfg.Generation.Seed = args.seed
	}
	if flagChanged(cmd, "placeholder") {
		cfg.Generation.Placeholder = args.placeholder
		cfg.Templates.Placeholder = args.placeholder
	}
	if flagChanged(cmd, "max-words") {
		cfg.Generation.MaxWords = args.maxWords
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	if created {
		logger.Warn("Config file not found, wrote defaults", "path", args.configPath)
	}

	return cfg, logger, nil
}

// trainChain reads every file, then trains a new chain on each of them in
// order. The returned function releases the chain's table.
func trainChain(ctx context.Context, cfg *Config, logger *slog.Logger, files []string) (*markov.Chain, func(), error) {
	docs, err := readCorpus(files)
	if err != nil {
		return nil, nil, err
	}

	table, closeTable, err := openTable(ctx, cfg.Generation.Store, logger)
	if err != nil {
		return nil, nil, err
	}

	opts := []markov.Option{markov.WithTable(table)}
	if cfg.Generation.Seed != 0 {
		opts = append(opts, markov.WithSeed(cfg.Generation.Seed))
	}
	chain := markov.NewChain(opts...)
	chain.SetLogger(logger)

	for _, doc := range docs {
		logger.Info("Training on file", "path", doc.path, "bytes", len(doc.text))
		if err = chain.Train(ctx, doc.text); err != nil {
			closeTable()
			return nil, nil, fmt.Errorf("failed to train on %s: %w", doc.path, err)
		}
	}

	return chain, closeTable, nil
}

func runGenerate(cmd *cobra.Command, args *rootArgs, files []string) error {
	ctx := cmd.Context()

	cfg, logger, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}

	chain, closeTable, err := trainChain(ctx, cfg, logger, files)
	if err != nil {
		return err
	}
	defer closeTable()

	var out string
	if args.templatePath != "" {
		renderer := templating.NewRenderer(logger, chain, cfg.Templates)
		data := templateData{
			Start:    args.start,
			MaxWords: cfg.Generation.MaxWords,
			Files:    files,
		}
		if out, err = renderTemplate(ctx, renderer, args.templatePath, data); err != nil {
			return err
		}
	} else {
		start := markov.StartKey
		if flagChanged(cmd, "start") {
			start = markov.KeyOf(args.start)
		}
		out, err = chain.Generate(ctx, start,
			markov.WithMaxWords(cfg.Generation.MaxWords),
			markov.WithPlaceholder(cfg.Generation.Placeholder),
		)
		if err != nil {
			return err
		}
		out += "\n"
	}

	return writeOutput(cmd.OutOrStdout(), args.outputPath, out)
}

func renderTemplate(ctx context.Context, renderer *templating.Renderer, path string, data templateData) (string, error) {
	name, err := renderer.ParseFile(path)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if err = renderer.Execute(ctx, &sb, name, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", path, err)
	}
	return sb.String(), nil
}

// writeOutput writes text to path atomically, or to stdout when path is
// empty.
func writeOutput(stdout io.Writer, path, text string) error {
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if err := atomic.WriteFile(path, strings.NewReader(text)); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
