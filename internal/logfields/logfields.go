package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyContentTypes = "content_types"
	KeyTaxonomy     = "taxonomy"
	KeyOffset       = "offset"
	KeyLimit        = "limit"
	KeyCount        = "count"
	KeyDropped      = "dropped"
	KeyFilter       = "filter"
	KeyNodeType     = "node_type"
	KeyPageKind     = "page_kind"
	KeyURL          = "url"
	KeyJobID        = "job_id"
	KeyDurationMS   = "duration_ms"
	KeyMethod       = "method"
	KeyPath         = "path"
	KeyStatus       = "status"
	KeyRemoteAddr   = "remote_addr"
	KeyRequestID    = "request_id"
	KeyError        = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func ContentTypes(t []string) slog.Attr { return slog.Any(KeyContentTypes, t) }
func Taxonomy(t string) slog.Attr       { return slog.String(KeyTaxonomy, t) }
func Offset(n int) slog.Attr            { return slog.Int(KeyOffset, n) }
func Limit(n int) slog.Attr             { return slog.Int(KeyLimit, n) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func Dropped(n int) slog.Attr           { return slog.Int(KeyDropped, n) }
func Filter(name string) slog.Attr      { return slog.String(KeyFilter, name) }
func NodeType(t string) slog.Attr       { return slog.String(KeyNodeType, t) }
func PageKind(k string) slog.Attr       { return slog.String(KeyPageKind, k) }
func URL(u string) slog.Attr            { return slog.String(KeyURL, u) }
func JobID(id string) slog.Attr         { return slog.String(KeyJobID, id) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Method(m string) slog.Attr         { return slog.String(KeyMethod, m) }
func Path(p string) slog.Attr           { return slog.String(KeyPath, p) }
func Status(code int) slog.Attr         { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr     { return slog.String(KeyRemoteAddr, a) }
func RequestID(id string) slog.Attr     { return slog.String(KeyRequestID, id) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
