// Package telemetry carries what components report while scraping: failures,
// warnings, debug traces and counts.
package telemetry

// API receives the reports of a component. An id names the reporting component
// and method in lowercase, e.g. "scraper.extract"; details go in params.
//
// note: fault injection point
type API interface {
	// ReportBroken reports a failure that needs a code change, such as markup
	// the extractor no longer understands.
	ReportBroken(id string, params ...any)
	// ReportWarning reports a failure that may go away on its own, such as a
	// page that could not be fetched.
	ReportWarning(id string, params ...any)
	ReportDebug(msg string, params ...any)
	// ReportCount reports the latest value of a count, values are not summed.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every id (and debug message) with "<namespace>: ".
type ScopedAPI struct {
	prefix string
	inner  API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{prefix: namespace + ": ", inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(s.prefix+id, params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(s.prefix+id, params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(s.prefix+msg, params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(s.prefix+id, count)
}
