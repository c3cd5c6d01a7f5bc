package provider

import "github.com/rawbytedev/yoke"

// BufferMarker marks raw, still-encoded data.
type BufferMarker struct{}

func (BufferMarker) Yokeable([]byte) {}

// BufferPayload is a payload over raw bytes.
type BufferPayload = DataPayload[BufferMarker, []byte]

// FromOwnedBuffer takes ownership of buf; the view is buf itself, held by a cart.
func FromOwnedBuffer(buf []byte) *BufferPayload {
	return &BufferPayload{yoke: yoke.AttachToCart(buf, func(b []byte) []byte { return b })}
}

// FromYokedBuffer wraps a buffer container built elsewhere.
func FromYokedBuffer(y *yoke.Yoke[[]byte]) *BufferPayload {
	return &BufferPayload{yoke: y}
}

// FromStaticBuffer wraps bytes that live for the whole process (e.g. embedded
// data). No cart is attached.
func FromStaticBuffer(buf []byte) *BufferPayload {
	return &BufferPayload{yoke: yoke.NewOwned(buf)}
}
