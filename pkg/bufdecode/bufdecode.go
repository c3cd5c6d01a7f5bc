// Package bufdecode turns buffer payloads into typed payloads.
//
// Decoding runs as a projection of the buffer payload, so a decoded view that
// borrows strings from the bytes (fractus with UnsafeStrings) keeps sharing
// the original cart. Compressed buffers are inflated into a new cart first.
package bufdecode

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/yoke"
	"github.com/rawbytedev/yoke/pkg/fractus"
	"github.com/rawbytedev/yoke/pkg/provider"
)

type Compression int

const (
	CompressionNone Compression = iota
	CompressionZstd
)

type Options struct {
	// UnsafeStrings lets fractus-decoded strings and byte slices alias the
	// buffer instead of copying it. Other formats always copy.
	UnsafeStrings bool
	// Compression applied on top of the format.
	Compression Compression
}

var log = logrus.StandardLogger()

// SetLogger routes this package's log lines to l.
func SetLogger(l *logrus.Logger) {
	log = l
}

// Deserialize consumes buf and decodes it into M's view.
// On failure buf is left untouched and still owned by the caller.
func Deserialize[M provider.DataMarker[Y], Y any](buf *provider.BufferPayload, format provider.BufferFormat, opts Options) (*provider.DataPayload[M, Y], error) {
	decode, err := decoderFor[Y](format, opts)
	if err != nil {
		return nil, err
	}
	entry := log.WithFields(logrus.Fields{
		"format": format.String(),
		"view":   fmt.Sprintf("%T", *new(Y)),
	})

	if opts.Compression == CompressionZstd {
		raw, err := inflate(buf.Get())
		if err != nil {
			entry.WithError(err).Debug("zstd inflate failed")
			return nil, err
		}
		p, err := provider.FromStorageWith[M](raw, decode)
		if err != nil {
			entry.WithError(err).Debug("buffer decode failed")
			return nil, err
		}
		buf.Release()
		return p, nil
	}

	p, err := provider.TryMapProject[M](buf, decode)
	if err != nil {
		entry.WithError(err).Debug("buffer decode failed")
		return nil, err
	}
	return p, nil
}

// DeserializeResponse decodes the payload of a buffer response using its
// format hint and carries the metadata over.
func DeserializeResponse[M provider.DataMarker[Y], Y any](resp *provider.DataResponse[provider.BufferMarker, []byte], opts Options) (*provider.DataResponse[M, Y], error) {
	md, buf, err := resp.TakeMetadataAndPayload()
	if err != nil {
		return nil, err
	}
	p, err := Deserialize[M, Y](buf, md.BufferFormat, opts)
	if err != nil {
		// put the buffer back so the caller can retry or release it
		resp.Payload = buf
		return nil, err
	}
	return &provider.DataResponse[M, Y]{Metadata: md, Payload: p}, nil
}

// FromCompressed builds a buffer payload over the zstd-inflated form of data.
func FromCompressed(data []byte) (*provider.BufferPayload, error) {
	raw, err := inflate(data)
	if err != nil {
		return nil, err
	}
	return provider.FromYokedBuffer(yoke.AttachToCart(raw, func(b []byte) []byte { return b })), nil
}

func decoderFor[Y any](format provider.BufferFormat, opts Options) (func([]byte) (Y, error), error) {
	switch format {
	case provider.BufferFormatFractus:
		dec := fractus.NewDecoder(fractus.Options{UnsafeStrings: opts.UnsafeStrings})
		return func(b []byte) (Y, error) {
			var y Y
			if err := dec.Decode(b, &y); err != nil {
				return y, fmt.Errorf("fractus: %w", err)
			}
			return y, nil
		}, nil
	case provider.BufferFormatJSON:
		return func(b []byte) (Y, error) {
			var y Y
			if err := json.Unmarshal(b, &y); err != nil {
				return y, fmt.Errorf("json: %w", err)
			}
			return y, nil
		}, nil
	case provider.BufferFormatYAML:
		return func(b []byte) (Y, error) {
			var y Y
			if err := yaml.Unmarshal(b, &y); err != nil {
				return y, fmt.Errorf("yaml: %w", err)
			}
			return y, nil
		}, nil
	case provider.BufferFormatProtobuf:
		var zero Y
		msg, ok := any(zero).(proto.Message)
		if !ok {
			return nil, provider.ErrUnsupportedFormat.WithContext("%T is not a proto.Message", zero)
		}
		return func(b []byte) (Y, error) {
			m := msg.ProtoReflect().Type().New().Interface()
			if err := proto.Unmarshal(b, m); err != nil {
				var y Y
				return y, fmt.Errorf("protobuf: %w", err)
			}
			return m.(Y), nil
		}, nil
	default:
		return nil, provider.ErrUnsupportedFormat.WithContext("format %s", format)
	}
}
