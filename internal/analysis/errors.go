package analysis

import (
	"errors"

	"optigenius/internal/fetcher"
)

// Error kinds, stable identifiers consumed by API error responses.
const (
	KindValidation   = "validation"
	KindFetchDNS     = "fetch_dns"
	KindFetchTimeout = "fetch_timeout"
	KindFetchRefused = "fetch_refused"
	KindFetchStatus  = "fetch_status"
	KindFetchGeneric = "fetch_generic"
	KindInternal     = "internal"
)

// Pipeline stages, reported alongside errors for diagnostics.
const (
	StageFetching = "fetching"
	StageParsing  = "parsing"
	StageScoring  = "scoring"
)

// Error is the typed failure returned by the analysis pipeline. Kind is
// a machine-readable classification, Stage names where the pipeline
// stopped, Message is safe to show to end users.
type Error struct {
	Kind    string
	Stage   string
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Err }

func validationError(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Stage: StageFetching, Message: msg, Err: err}
}

// classifyFetchError maps the fetcher's error taxonomy onto analysis
// error kinds.
func classifyFetchError(err error) *Error {
	var statusErr *fetcher.StatusError
	if errors.As(err, &statusErr) {
		return &Error{Kind: KindFetchStatus, Stage: StageFetching, Message: statusErr.Error(), Err: err}
	}

	var dnsErr *fetcher.DNSError
	if errors.As(err, &dnsErr) {
		return &Error{Kind: KindFetchDNS, Stage: StageFetching, Message: dnsErr.Error(), Err: err}
	}

	var timeoutErr *fetcher.TimeoutError
	if errors.As(err, &timeoutErr) {
		return &Error{Kind: KindFetchTimeout, Stage: StageFetching, Message: timeoutErr.Error(), Err: err}
	}

	var refusedErr *fetcher.RefusedError
	if errors.As(err, &refusedErr) {
		return &Error{Kind: KindFetchRefused, Stage: StageFetching, Message: refusedErr.Error(), Err: err}
	}

	return &Error{Kind: KindFetchGeneric, Stage: StageFetching, Message: err.Error(), Err: err}
}
