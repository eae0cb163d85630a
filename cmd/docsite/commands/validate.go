package commands

import (
	"encoding/json"
	"fmt"

	"git.home.luguber.info/inful/docsite/internal/config"
	"git.home.luguber.info/inful/docsite/internal/foundation"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Format string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
}

type validateOutput struct {
	Config   string                 `json:"config"`
	Valid    bool                   `json:"valid"`
	Snapshot string                 `json:"snapshot,omitempty"`
	Errors   foundation.FieldErrors `json:"errors"`
	Warnings foundation.FieldErrors `json:"warnings"`
}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := config.Read(root.Config)
	if err != nil {
		return err
	}
	root.applyLogging(cfg)
	report := config.Validate(cfg)

	out := validateOutput{
		Config:   root.Config,
		Valid:    report.Valid(),
		Errors:   report.Errors,
		Warnings: report.Warnings,
	}
	if out.Valid {
		out.Snapshot = cfg.Snapshot()
	}

	if v.Format == "json" {
		if out.Errors == nil {
			out.Errors = foundation.FieldErrors{}
		}
		if out.Warnings == nil {
			out.Warnings = foundation.FieldErrors{}
		}
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return err
		}
	} else {
		for _, fe := range report.Errors {
			_, _ = fmt.Fprintf(g.Stdout, "error   %s: %s [%s]\n", fe.Field, fe.Message, fe.Code)
		}
		for _, fe := range report.Warnings {
			_, _ = fmt.Fprintf(g.Stdout, "warning %s: %s [%s]\n", fe.Field, fe.Message, fe.Code)
		}
		if out.Valid {
			_, _ = fmt.Fprintf(g.Stdout, "%s is valid (snapshot %s)\n", root.Config, out.Snapshot[:12])
		}
	}
	return report.Err()
}
