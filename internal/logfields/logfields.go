package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyConfigFile = "config_file"
	KeyPageSource = "page_source"
	KeyPages      = "pages"
	KeyPrefix     = "prefix"
	KeyEntries    = "entries"
	KeyDepth      = "depth"
	KeyOutput     = "output"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Helpers returning slog.Attr so callers can compose them.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func ConfigFile(path string) slog.Attr { return slog.String(KeyConfigFile, path) }
func PageSource(src string) slog.Attr  { return slog.String(KeyPageSource, src) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Prefix(p string) slog.Attr        { return slog.String(KeyPrefix, p) }
func Entries(n int) slog.Attr          { return slog.Int(KeyEntries, n) }
func Depth(d int) slog.Attr            { return slog.Int(KeyDepth, d) }
func Output(dest string) slog.Attr     { return slog.String(KeyOutput, dest) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
