package provider

import "fmt"

// DataErrorKind classifies a DataError.
type DataErrorKind int

const (
	KindUnknown DataErrorKind = iota
	// KindInvalidState: the payload is not in a state that allows the operation.
	KindInvalidState
	// KindMissingPayload: a response carried no payload.
	KindMissingPayload
	// KindUnsupportedFormat: a buffer format cannot produce the requested view.
	KindUnsupportedFormat
)

func (k DataErrorKind) String() string {
	switch k {
	case KindInvalidState:
		return "invalid state"
	case KindMissingPayload:
		return "missing payload"
	case KindUnsupportedFormat:
		return "unsupported buffer format"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidState      = &DataError{Kind: KindInvalidState}
	ErrMissingPayload    = &DataError{Kind: KindMissingPayload}
	ErrUnsupportedFormat = &DataError{Kind: KindUnsupportedFormat}
)

// DataError is returned by payload and response operations.
// errors.Is matches any DataError of the same kind.
type DataError struct {
	Kind    DataErrorKind
	Marker  string // marker type the operation was for, if known
	Context string
	Err     error
}

func (e *DataError) Error() string {
	msg := "provider: " + e.Kind.String()
	if e.Marker != "" {
		msg += ": " + e.Marker
	}
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DataError) Unwrap() error { return e.Err }

func (e *DataError) Is(target error) bool {
	t, ok := target.(*DataError)
	return ok && t.Kind == e.Kind
}

// WithMarker returns a copy of e tagged with M.
func WithMarker[M any](e *DataError) *DataError {
	out := *e
	out.Marker = markerName[M]()
	return &out
}

// WithContext returns a copy of e with a context string.
func (e *DataError) WithContext(format string, args ...any) *DataError {
	out := *e
	out.Context = fmt.Sprintf(format, args...)
	return &out
}

// WithError returns a copy of e wrapping err.
func (e *DataError) WithError(err error) *DataError {
	out := *e
	out.Err = err
	return &out
}
