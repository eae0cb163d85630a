package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats linting results for output.
type Formatter interface {
	Format(w io.Writer, result *Result, configPath string) error
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct {
	errorColor *color.Color
	warnColor  *color.Color
	infoColor  *color.Color
	dimColor   *color.Color
}

// NewTextFormatter creates a text formatter. Colors are only emitted when useColor is set.
func NewTextFormatter(useColor bool) *TextFormatter {
	f := &TextFormatter{
		errorColor: color.New(color.FgRed, color.Bold),
		warnColor:  color.New(color.FgYellow, color.Bold),
		infoColor:  color.New(color.FgCyan),
		dimColor:   color.New(color.FgHiBlack),
	}
	for _, c := range []*color.Color{f.errorColor, f.warnColor, f.infoColor, f.dimColor} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return f
}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result, configPath string) error {
	if _, err := fmt.Fprintf(w, "Linting %s\n%s\n\n", configPath, strings.Repeat("━", 60)); err != nil {
		return err
	}

	for _, issue := range result.Issues {
		if err := f.formatIssue(w, issue); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s\nResults:\n  %d pages scanned\n", strings.Repeat("━", 60), result.PagesTotal); err != nil {
		return err
	}
	counts := []struct {
		n     int
		label string
		c     *color.Color
	}{
		{result.ErrorCount(), "error", f.errorColor},
		{result.WarningCount(), "warning", f.warnColor},
		{result.InfoCount(), "info", f.infoColor},
	}
	for _, c := range counts {
		if c.n == 0 {
			continue
		}
		label := c.label
		if c.label != "info" {
			label += pluralize(c.n)
		}
		if _, err := fmt.Fprintf(w, "  %s\n", c.c.Sprintf("%d %s", c.n, label)); err != nil {
			return err
		}
	}

	var final string
	switch {
	case result.HasErrors():
		final = f.errorColor.Sprint("Configuration has errors.")
	case result.HasWarnings():
		final = f.warnColor.Sprint("Configuration has warnings.")
	case len(result.Issues) > 0:
		final = f.infoColor.Sprint("All issues are informational.")
	default:
		final = "No issues found."
	}
	_, err := fmt.Fprintf(w, "\n%s\n", final)
	return err
}

func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	var head string
	switch issue.Severity {
	case SeverityError:
		head = f.errorColor.Sprint("✗ " + issue.Severity.String())
	case SeverityWarning:
		head = f.warnColor.Sprint("⚠ " + issue.Severity.String())
	default:
		head = f.infoColor.Sprint("ℹ " + issue.Severity.String())
	}

	location := issue.Field
	if issue.Path != "" {
		if location != "" {
			location += " "
		}
		location += issue.Path
	}
	if _, err := fmt.Fprintf(w, "%s [%s] %s\n", head, issue.Rule, location); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "  %s\n", issue.Message); err != nil {
		return err
	}
	if issue.Fix != "" {
		if _, err := fmt.Fprintf(w, "  %s\n", f.dimColor.Sprint("Fix: "+issue.Fix)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	Config       string      `json:"config"`
	PagesTotal   int         `json:"pages_total"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	InfoCount    int         `json:"info_count"`
	Issues       []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Field    string `json:"field,omitempty"`
	Path     string `json:"path,omitempty"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result, configPath string) error {
	output := JSONOutput{
		Config:       configPath,
		PagesTotal:   result.PagesTotal,
		ErrorCount:   result.ErrorCount(),
		WarningCount: result.WarningCount(),
		InfoCount:    result.InfoCount(),
		Issues:       make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			Rule:     issue.Rule,
			Severity: issue.Severity.String(),
			Field:    issue.Field,
			Path:     issue.Path,
			Message:  issue.Message,
			Fix:      issue.Fix,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// NewFormatter creates the appropriate formatter based on format string.
func NewFormatter(format string, useColor bool) Formatter {
	switch format {
	case "json":
		return NewJSONFormatter()
	default:
		return NewTextFormatter(useColor)
	}
}

// pluralize returns "s" if count != 1, otherwise empty string.
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
