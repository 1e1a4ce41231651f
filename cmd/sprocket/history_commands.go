package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"sprocket/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse the ledger of past invocations",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var kind string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.History.Limit
			}

			var kinds []history.Kind
			if trimmed := strings.TrimSpace(kind); trimmed != "" {
				kinds = append(kinds, history.Kind(trimmed))
			}

			records, err := store.List(cmd.Context(), limit, kinds...)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, recordViews(records))
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded invocations.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderHistoryTable(records))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to show (defaults to history.limit)")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by kind: transcode, frame, frames, concat")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit records as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one invocation, including its full argument vector",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("no record matching %q", args[0])
			}

			if jsonOutput {
				return writeJSON(cmd, recordView(rec))
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"ID", rec.ID},
				{"Kind", string(rec.Kind)},
				{"Title", rec.Title},
				{"Status", string(rec.Status)},
				{"Input", rec.InputPath},
				{"Output", rec.OutputPath},
			}
			if rec.VideoCodec != "" {
				rows = append(rows, []string{"Video codec", rec.VideoCodec})
			}
			if rec.AudioCodec != "" {
				rows = append(rows, []string{"Audio codec", rec.AudioCodec})
			}
			if rec.InputSize > 0 {
				rows = append(rows, []string{"Input size", humanize.Bytes(uint64(rec.InputSize))})
			}
			if rec.OutputSize > 0 {
				rows = append(rows, []string{"Output size", humanize.Bytes(uint64(rec.OutputSize))})
			}
			rows = append(rows, []string{"Duration", rec.Duration.Round(time.Millisecond).String()})
			rows = append(rows, []string{"Created", rec.CreatedAt.Local().Format(time.RFC3339)})
			if rec.ErrorMessage != "" {
				rows = append(rows, []string{"Error", rec.ErrorMessage})
			}
			fmt.Fprintln(out, renderTable([]string{"Field", "Value"}, rows))
			fmt.Fprintln(out, "Arguments:")
			fmt.Fprintf(out, "  %s\n", strings.Join(rec.Arguments, " "))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the record as JSON")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded invocations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := requireHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d record(s)\n", removed)
			return nil
		},
	}
}

func requireHistory(ctx *commandContext) (*history.Store, error) {
	store, err := ctx.historyStore()
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, fmt.Errorf("history is disabled; enable it in the [history] config section")
	}
	return store, nil
}

func renderHistoryTable(records []*history.Record) string {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		id := rec.ID
		if len(id) > 8 {
			id = id[:8]
		}
		size := ""
		if rec.OutputSize > 0 {
			size = humanize.Bytes(uint64(rec.OutputSize))
		}
		rows = append(rows, []string{
			id,
			string(rec.Kind),
			rec.Title,
			string(rec.Status),
			size,
			rec.Duration.Round(time.Second).String(),
			humanize.Time(rec.CreatedAt),
		})
	}
	return renderTable(
		[]string{"ID", "Kind", "Title", "Status", "Size", "Took", "When"},
		rows,
		5, 6,
	)
}

// historyRecordView is the JSON shape of a ledger record.
type historyRecordView struct {
	ID           string   `json:"id"`
	Kind         string   `json:"kind"`
	Title        string   `json:"title"`
	InputPath    string   `json:"input_path,omitempty"`
	OutputPath   string   `json:"output_path,omitempty"`
	VideoCodec   string   `json:"video_codec,omitempty"`
	AudioCodec   string   `json:"audio_codec,omitempty"`
	Arguments    []string `json:"arguments"`
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message,omitempty"`
	InputSize    int64    `json:"input_size_bytes,omitempty"`
	OutputSize   int64    `json:"output_size_bytes,omitempty"`
	DurationMS   int64    `json:"duration_ms"`
	CreatedAt    string   `json:"created_at"`
}

func recordView(rec *history.Record) historyRecordView {
	return historyRecordView{
		ID:           rec.ID,
		Kind:         string(rec.Kind),
		Title:        rec.Title,
		InputPath:    rec.InputPath,
		OutputPath:   rec.OutputPath,
		VideoCodec:   rec.VideoCodec,
		AudioCodec:   rec.AudioCodec,
		Arguments:    rec.Arguments,
		Status:       string(rec.Status),
		ErrorMessage: rec.ErrorMessage,
		InputSize:    rec.InputSize,
		OutputSize:   rec.OutputSize,
		DurationMS:   rec.Duration.Milliseconds(),
		CreatedAt:    rec.CreatedAt.Format(time.RFC3339Nano),
	}
}

func recordViews(records []*history.Record) []historyRecordView {
	views := make([]historyRecordView, 0, len(records))
	for _, rec := range records {
		views = append(views, recordView(rec))
	}
	return views
}
