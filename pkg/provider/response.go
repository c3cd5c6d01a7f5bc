package provider

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

// BufferFormat hints how a buffer-backed payload was encoded.
type BufferFormat int

const (
	BufferFormatUnknown BufferFormat = iota
	BufferFormatFractus
	BufferFormatJSON
	BufferFormatYAML
	BufferFormatProtobuf
)

func (f BufferFormat) String() string {
	switch f {
	case BufferFormatFractus:
		return "fractus"
	case BufferFormatJSON:
		return "json"
	case BufferFormatYAML:
		return "yaml"
	case BufferFormatProtobuf:
		return "protobuf"
	default:
		return "unknown"
	}
}

// DataResponseMetadata describes where a payload came from.
type DataResponseMetadata struct {
	// Locale is the locale the data was resolved for, if fallback ran.
	Locale *language.Tag
	// BufferFormat is the encoding of buffer-backed data, if known.
	BufferFormat BufferFormat
}

func (m DataResponseMetadata) Equal(other DataResponseMetadata) bool {
	if m.BufferFormat != other.BufferFormat {
		return false
	}
	if m.Locale == nil || other.Locale == nil {
		return m.Locale == other.Locale
	}
	return *m.Locale == *other.Locale
}

func (m DataResponseMetadata) String() string {
	locale := "<nil>"
	if m.Locale != nil {
		locale = m.Locale.String()
	}
	return fmt.Sprintf("DataResponseMetadata{Locale: %s, BufferFormat: %s}", locale, m.BufferFormat)
}

// DataResponse is what a loader returns: metadata plus an optional payload.
type DataResponse[M DataMarker[Y], Y any] struct {
	Metadata DataResponseMetadata
	Payload  *DataPayload[M, Y]
}

// TakePayload returns the payload, or ErrMissingPayload tagged with M.
func (r *DataResponse[M, Y]) TakePayload() (*DataPayload[M, Y], error) {
	_, p, err := r.TakeMetadataAndPayload()
	return p, err
}

// TakeMetadataAndPayload returns the metadata and the payload. The metadata
// is returned even when the payload is missing.
func (r *DataResponse[M, Y]) TakeMetadataAndPayload() (DataResponseMetadata, *DataPayload[M, Y], error) {
	p := r.Payload
	r.Payload = nil
	if p == nil {
		log.WithFields(logrus.Fields{
			"marker":   markerName[M](),
			"metadata": r.Metadata.String(),
		}).Debug("response has no payload")
		return r.Metadata, nil, WithMarker[M](ErrMissingPayload)
	}
	return r.Metadata, p, nil
}

// PayloadFromResponse consumes r and returns its payload; r.Payload is cleared.
func PayloadFromResponse[M DataMarker[Y], Y any](r *DataResponse[M, Y]) (*DataPayload[M, Y], error) {
	return r.TakePayload()
}

func (r *DataResponse[M, Y]) Clone() *DataResponse[M, Y] {
	out := &DataResponse[M, Y]{Metadata: r.Metadata}
	if r.Metadata.Locale != nil {
		l := *r.Metadata.Locale
		out.Metadata.Locale = &l
	}
	if r.Payload != nil {
		out.Payload = r.Payload.Clone()
	}
	return out
}

func (r *DataResponse[M, Y]) Equal(other *DataResponse[M, Y]) bool {
	return r.Metadata.Equal(other.Metadata) && r.Payload.Equal(other.Payload)
}

func (r *DataResponse[M, Y]) String() string {
	payload := "<nil>"
	if r.Payload != nil {
		payload = r.Payload.String()
	}
	return fmt.Sprintf("DataResponse{Metadata: %s, Payload: %s}", r.Metadata, payload)
}
