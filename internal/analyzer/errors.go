package analyzer

import "fmt"

// ErrorKind is the closed set of analysis failure categories. Callers branch
// on the kind instead of inspecting error text.
type ErrorKind string

const (
	KindTimeout    ErrorKind = "timeout"
	KindTransport  ErrorKind = "transport"
	KindHTTPStatus ErrorKind = "http_status"
	KindMalformed  ErrorKind = "malformed"
	KindUnknown    ErrorKind = "unknown"
)

// AnalysisError is a classified failure for one site analysis. Message and
// Reason are safe to log: the API key is redacted before they are set. The
// wrapped cause stays available for errors.Is/As but is never printed.
type AnalysisError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
	Reason     string
	Err        error
}

func (e *AnalysisError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("analysis failed (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("analysis failed (%s): %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}
