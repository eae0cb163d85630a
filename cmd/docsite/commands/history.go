package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"git.home.luguber.info/inful/docsite/internal/state"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit   int    `short:"n" default:"20" help:"Number of builds to show (0 for all)"`
	Format  string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	StateDB string `name:"state-db" help:"Build history database (default .docsite/state.db next to the configuration)"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	store, err := root.openStore(h.StateDB)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	records, err := store.List(context.Background(), h.Limit)
	if err != nil {
		return err
	}

	if h.Format == "json" {
		if records == nil {
			records = []state.BuildRecord{}
		}
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "No builds recorded")
		return nil
	}
	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tTARGETS\tPAGES\tSNAPSHOT\tSTARTED\tDURATION")
	for _, r := range records {
		targets := make([]string, len(r.Targets))
		for i, t := range r.Targets {
			targets[i] = string(t)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			shorten(r.ID, 8),
			r.Status,
			strings.Join(targets, ","),
			r.PageCount,
			shorten(r.Snapshot, 12),
			r.StartedAt.Local().Format(time.DateTime),
			r.Duration().Round(time.Millisecond))
	}
	return tw.Flush()
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
