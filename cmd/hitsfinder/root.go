package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/hitsfinder/core/client/middleware"
	"github.com/leofalp/hitsfinder/core/extract"
	"github.com/leofalp/hitsfinder/core/hits"
	"github.com/leofalp/hitsfinder/core/render"
	"github.com/leofalp/hitsfinder/internal/config"
	"github.com/leofalp/hitsfinder/internal/logging"
	"github.com/leofalp/hitsfinder/internal/store"
)

type rootFlags struct {
	year       int
	genre      string
	format     string
	outputDir  string
	noSave     bool
	configFile string
	provider   string
	model      string
	apiURL     string
	envFiles   []string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "hitsfinder",
		Short: "List the top artists and hits of a year in a music genre",
		Long: "hitsfinder asks a language model for the top artists of a year in a\n" +
			"music genre and their best known songs, then prints and saves the list.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHits(cmd, &flags)
		},
	}

	f := cmd.Flags()
	f.IntVar(&flags.year, "year", 0, "Year to get hits for (prompted when omitted)")
	f.StringVar(&flags.genre, "genre", "", "Music genre (default \"classic rock\")")
	f.StringVar(&flags.format, "format", "", "Output format: markdown, html or json")
	f.StringVar(&flags.outputDir, "output-dir", "", "Directory the document is saved to")
	f.BoolVar(&flags.noSave, "no-save", false, "Print the document without saving it")
	f.StringVar(&flags.configFile, "config", "", "Path to a YAML config file")
	f.StringVar(&flags.provider, "provider", "", "Model backend: ollama, openai or gemini")
	f.StringVar(&flags.model, "model", "", "Model name")
	f.StringVar(&flags.apiURL, "api-url", "", "Backend endpoint URL")
	f.StringSliceVar(&flags.envFiles, "env-file", []string{".env"}, "Dotenv files to load")

	return cmd
}

// loadOptions turns the flags the user actually set into config overrides.
func (flags *rootFlags) loadOptions(cmd *cobra.Command) []config.LoadOption {
	opts := []config.LoadOption{config.WithEnvFiles(flags.envFiles...)}
	if flags.configFile != "" {
		opts = append(opts, config.WithConfigFile(flags.configFile))
	}

	changed := cmd.Flags().Changed
	overrides := []struct {
		flag  string
		key   string
		value any
	}{
		{"genre", "query.genre", flags.genre},
		{"format", "output.format", flags.format},
		{"output-dir", "output.dir", flags.outputDir},
		{"provider", "provider", flags.provider},
		{"model", "model", flags.model},
		{"api-url", "api_url", flags.apiURL},
	}
	for _, o := range overrides {
		if changed(o.flag) {
			opts = append(opts, config.WithOverride(o.key, o.value))
		}
	}
	if flags.noSave {
		opts = append(opts, config.WithOverride("output.save", false))
	}
	return opts
}

func runHits(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load(flags.loadOptions(cmd)...)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(cmd.ErrOrStderr(), level, cfg.Log.Format)
	slog.SetDefault(logger)

	format, err := render.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	year := flags.year
	if !cmd.Flags().Changed("year") {
		year, err = promptYear(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
	}

	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	opts := finderOptions(cfg, logger)
	if cfg.Query.PromptTemplate != "" {
		text, err := os.ReadFile(cfg.Query.PromptTemplate)
		if err != nil {
			return fmt.Errorf("read prompt template: %w", err)
		}
		opts = append(opts, hits.WithPromptTemplate(string(text)))
	}

	finder, err := hits.New(provider, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt)
	defer stop()

	genre := cfg.Query.Genre
	if strings.TrimSpace(genre) == "" {
		genre = hits.DefaultGenre
	}

	fmt.Fprintf(out, "Fetching %s hits from %d...\n", genre, year)

	outcome, err := finder.FetchHits(ctx, year, genre)
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return fmt.Errorf("no hits: %w", outcome.Err())
	}

	document, err := render.Render(format, year, genre, outcome.Hits)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s:\n\n%s", render.Title(year, genre), document)

	if cfg.Output.Save {
		path, err := store.Save(cfg.Output.Dir, store.FileName(genre, year, format.Extension()), document)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved to %s\n", path)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// promptYear asks for the year on out and reads one line from in.
func promptYear(in io.Reader, out io.Writer) (int, error) {
	fmt.Fprint(out, "Enter the year: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, fmt.Errorf("read year: %w", err)
	}

	year, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("invalid year %q", strings.TrimSpace(line))
	}
	return year, nil
}

func finderOptions(cfg *config.Config, logger *slog.Logger) []hits.Option {
	return []hits.Option{
		hits.WithModel(cfg.Model),
		hits.WithSystemPrompt(cfg.SystemPrompt),
		hits.WithTemperature(cfg.Temperature),
		hits.WithJSONMode(cfg.JSONMode),
		hits.WithCounts(cfg.Query.ArtistCount, cfg.Query.SongCount),
		hits.WithAttemptTimeout(cfg.Query.AttemptTimeout),
		hits.WithRetry(middleware.RetryConfig{
			MaxAttempts:    cfg.Retry.MaxAttempts,
			InitialBackoff: cfg.Retry.InitialBackoff,
			MaxBackoff:     cfg.Retry.MaxBackoff,
			BackoffFactor:  cfg.Retry.BackoffFactor,
			JitterFraction: cfg.Retry.JitterFraction,
		}),
		hits.WithLogger(logger),
		hits.WithLogLevel(middleware.ParseLogLevel(cfg.Log.Requests)),
		hits.WithExtractOptions(extract.WithSongCap(cfg.Query.SongCap)),
	}
}
