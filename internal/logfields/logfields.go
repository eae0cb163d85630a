// Package logfields defines the slog attribute keys shared across docsite.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyTarget     = "target"
	KeyStage      = "stage"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyField      = "field"
	KeyRule       = "rule"
	KeyCount      = "count"
	KeySnapshot   = "snapshot"
	KeyMethod     = "method"
	KeyAddr       = "addr"
	KeyJob        = "job"
	KeyError      = "error"
)

func BuildID(id string) slog.Attr        { return slog.String(KeyBuildID, id) }
func Target(t string) slog.Attr          { return slog.String(KeyTarget, t) }
func Stage(name string) slog.Attr        { return slog.String(KeyStage, name) }
func Status(s string) slog.Attr          { return slog.String(KeyStatus, s) }
func Path(p string) slog.Attr            { return slog.String(KeyPath, p) }
func File(f string) slog.Attr            { return slog.String(KeyFile, f) }
func Field(f string) slog.Attr           { return slog.String(KeyField, f) }
func Rule(r string) slog.Attr            { return slog.String(KeyRule, r) }
func Count(n int) slog.Attr              { return slog.Int(KeyCount, n) }
func Snapshot(hash string) slog.Attr     { return slog.String(KeySnapshot, hash) }
func Method(m string) slog.Attr          { return slog.String(KeyMethod, m) }
func Addr(a string) slog.Attr            { return slog.String(KeyAddr, a) }
func Job(name string) slog.Attr          { return slog.String(KeyJob, name) }
func Duration(d time.Duration) slog.Attr { return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000) }

// Error returns the error attribute. A nil error yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
