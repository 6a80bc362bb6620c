// Command chatsummary runs the chat summary flow for one engagement from an
// operator's shell, using the same environment as the Lambda function.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"engagement-tracker/internal/app"
	"engagement-tracker/internal/domain"
	"engagement-tracker/internal/usecase"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type summaryOutput struct {
	EngagementID string                `json:"engagementId"`
	HasChatSpace bool                  `json:"hasChatSpace"`
	ChatSpaceURL string                `json:"chatSpaceUrl,omitempty"`
	Summary      *domain.SummaryResult `json:"summary"`
	CachedAt     string                `json:"cachedAt,omitempty"`
	FromCache    bool                  `json:"fromCache"`
	MessageCount int                   `json:"messageCount"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "chatsummary",
		Short:        "Inspect and refresh engagement chat summaries",
		SilenceUsage: true,
	}
	root.AddCommand(newGetCmd(), newVersionCmd())
	return root
}

func newGetCmd() *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "get <engagementId>",
		Short: "Print the chat summary for an engagement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.LogLevel}))

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			svc, err := app.NewChatSummaryService(ctx, cfg, logger)
			if err != nil {
				return err
			}
			out, err := svc.GetChatSummary(ctx, usecase.ChatSummaryInput{EngagementID: args[0], Refresh: refresh})
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the 24h cache and regenerate")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func writeSummary(w io.Writer, out usecase.ChatSummaryOutput) error {
	view := summaryOutput{
		EngagementID: out.EngagementID,
		HasChatSpace: out.HasChatSpace,
		ChatSpaceURL: out.ChatSpaceURL,
		Summary:      out.Summary,
		FromCache:    out.FromCache,
		MessageCount: out.MessageCount,
	}
	if out.HasChatSpace {
		view.CachedAt = out.CachedAt.UTC().Format(time.RFC3339)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}
