package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"summarizer/src/server"
	"summarizer/src/summary"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var errNotAdded = errors.New("summary was not added, see the log for the cause")

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the summary page and API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, srv, err := a.newServer(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			return srv.Run(ctx)
		},
	}
}

func (a *app) newServer(ctx context.Context) (*session, *server.Server, error) {
	s, err := a.open(ctx)
	if err != nil {
		return nil, nil, err
	}
	s.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return s, server.NewServer(s.client, a.cfg.ServerConfig, s.registry), nil
}

func newSummarizeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [text...]",
		Short: "Summarize text from the arguments or stdin and store it",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}

			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if strings.TrimSpace(text) == "" {
				return nil
			}
			if !s.client.Submit(cmd.Context(), text) {
				return errNotAdded
			}
			printEntry(cmd.OutOrStdout(), 0, s.client.History()[0])
			return nil
		},
	}
}

func newHistoryCommand(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored summaries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if asJSON {
				data, err := sonic.ConfigStd.MarshalIndent(s.client.Snapshot(), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			for i, entry := range s.client.History() {
				printEntry(cmd.OutOrStdout(), i, entry)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON output")
	return cmd
}

func newDeleteCommand(a *app) *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the summary at --index and every identical copy of it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := entryAt(s.client, index)
			if err != nil {
				return err
			}
			if err := s.client.Delete(cmd.Context(), entry); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted. %d summaries left\n", len(s.client.History()))
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "position in history, 0 is newest")
	return cmd
}

func newCopyCommand(a *app) *cobra.Command {
	var index int
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy the summary at --index to the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context(), summary.WithClipboard(summary.SystemClipboard{}))
			if err != nil {
				return err
			}
			defer s.Close()

			entry, err := entryAt(s.client, index)
			if err != nil {
				return err
			}
			if err := s.client.Copy(entry); err != nil {
				return err
			}
			if !(summary.SystemClipboard{}).Available() {
				fmt.Fprintln(cmd.OutOrStdout(), "Clipboard unavailable")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Copied!")
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", 0, "position in history, 0 is newest")
	return cmd
}

func newPinnedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pinned",
		Short: "Show the pinned summary, if any",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if pinned, ok := s.client.Pinned(); ok {
				fmt.Fprintln(cmd.OutOrStdout(), pinned)
			}
			return nil
		},
	}
}

func entryAt(client *summary.Client, index int) (string, error) {
	history := client.History()
	if index < 0 || index >= len(history) {
		return "", fmt.Errorf("index %d out of range, history has %d summaries", index, len(history))
	}
	return history[index], nil
}

func printEntry(w io.Writer, index int, entry string) {
	fmt.Fprintf(w, "[%d]\n", index)
	for _, item := range summary.Bullets(entry) {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
