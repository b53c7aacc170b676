package cli

import (
	"context"
	"fmt"
	"os"

	"summarizer/src"
	"summarizer/src/llm/gemini"
	"summarizer/src/logger"
	"summarizer/src/storage"
	"summarizer/src/summary"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	cfg        *src.Config
}

// NewRootCommand builds the summarizer command tree
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "summarizer",
		Short:         "Bullet-point summaries with Google Gemini",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := src.LoadConfig(a.configPath)
			if err != nil {
				return err
			}
			if err := logger.InitLogger(cfg.LogConfig); err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath(), "optional YAML config file (env CONFIG_FILE)")

	root.AddCommand(
		newServeCommand(a),
		newSummarizeCommand(a),
		newHistoryCommand(a),
		newDeleteCommand(a),
		newCopyCommand(a),
		newPinnedCommand(a),
	)
	return root
}

// session is a loaded summary client plus what must be released after use
type session struct {
	client   *summary.Client
	store    storage.Store
	registry *prometheus.Registry
}

func (s *session) Close() error {
	return s.store.Close()
}

// open builds a loaded client. Only the copy command hands it the system
// clipboard: in serve the browser owns the clipboard and the client just
// raises the copied flag.
func (a *app) open(ctx context.Context, opts ...summary.Option) (*session, error) {
	store, err := storage.Open(ctx, a.cfg.StoreConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if a.cfg.GeminiConfig.APIKey == "" {
		logger.Warn().Msg("GEMINI_API_KEY is not set; summarization requests will be rejected")
	}

	registry := prometheus.NewRegistry()
	opts = append(opts, summary.WithMetrics(summary.MustNewMetrics(registry)))
	client := summary.NewClient(
		gemini.NewClient(a.cfg.GeminiConfig, src.ModelName),
		storage.NewHistoryRepository(store, a.cfg.StoreConfig.Prefix),
		opts...,
	)
	if err := client.Load(ctx); err != nil {
		store.Close()
		return nil, err
	}

	return &session{client: client, store: store, registry: registry}, nil
}

func defaultConfigPath() string {
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}
