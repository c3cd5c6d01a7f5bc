package provider

import (
	"errors"
	"strings"
	"testing"
	"testing/quick"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type helloAliasMarker struct{}

func (helloAliasMarker) Yokeable(HelloWorldV1) {}

type messageMarker struct{}

func (messageMarker) Yokeable(string) {}

func helloFromBytes(b []byte) (HelloWorldV1, error) {
	return HelloWorldV1{Message: string(b)}, nil
}

func TestFromOwnedRoundTrip(t *testing.T) {
	condition := func(msg string) bool {
		p := FromOwned[HelloWorldV1Marker](HelloWorldV1{Message: msg})
		v, err := p.TryUnwrapOwned()
		require.NoError(t, err)
		return assert.ObjectsAreEqual(HelloWorldV1{Message: msg}, v)
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestStorageBackedUnwrapFails(t *testing.T) {
	condition := func(b []byte) bool {
		p, err := FromStorageWith[HelloWorldV1Marker](b, helloFromBytes)
		require.NoError(t, err)
		_, err = p.TryUnwrapOwned()
		var de *DataError
		return errors.Is(err, ErrInvalidState) && errors.As(err, &de) &&
			strings.Contains(de.Marker, "HelloWorldV1Marker")
	}
	require.NoError(t, quick.Check(condition, &quick.Config{}))
}

func TestFromStorageWithBuilderError(t *testing.T) {
	bad := errors.New("bad bytes")
	p, err := FromStorageWith[HelloWorldV1Marker]([]byte{0xff}, func([]byte) (HelloWorldV1, error) {
		return HelloWorldV1{}, bad
	})
	require.Nil(t, p)
	require.Same(t, bad, err)
}

func TestHelloWorldEndToEnd(t *testing.T) {
	p, err := FromStorageWith[HelloWorldV1Marker]([]byte("Hello"), helloFromBytes)
	require.NoError(t, err)
	require.Equal(t, "Hello", p.Get().Message)

	before := p.Clone()
	p.WithMut(func(h *HelloWorldV1) { h.Message += " World" })
	require.Equal(t, "Hello World", p.Get().Message)
	require.Equal(t, "Hello", before.Get().Message)
	require.True(t, p.Cart().Same(before.Cart()))
	require.False(t, p.Equal(before))
}

func TestWithMutMoveSuffix(t *testing.T) {
	p := FromStaticStr("Hello")
	suffix := " World"
	p.WithMut(func(h *HelloWorldV1) { h.Message += suffix })
	require.Equal(t, "Hello World", p.Get().Message)
	require.Equal(t, "{Message:Hello World}", p.String())
}

func TestMapProject(t *testing.T) {
	p1 := FromOwned[HelloWorldV1Marker](HelloWorldV1{Message: "Hello World"})
	p2 := MapProject[messageMarker](p1, func(h HelloWorldV1) string { return h.Message })
	require.Equal(t, "Hello World", p2.Get())
	require.Panics(t, func() { p1.Get() })
}

func TestMapProjectSharesBuffer(t *testing.T) {
	buf := []byte("Hello World")
	p, err := FromStorageWith[HelloWorldV1Marker](buf, func(b []byte) (HelloWorldV1, error) {
		return HelloWorldV1{Message: unsafe.String(&b[0], len(b))}, nil
	})
	require.NoError(t, err)
	cart := p.Cart()

	first := MapProjectCloned[messageMarker](p, func(h HelloWorldV1) string { return h.Message[:5] })
	second := MapProject[messageMarker](p, func(h HelloWorldV1) string { return h.Message[6:] })
	require.Equal(t, "Hello", first.Get())
	require.Equal(t, "World", second.Get())
	require.Same(t, cart, second.Cart())
	require.True(t, first.Cart().Same(second.Cart()))
	require.True(t, unsafe.SliceData(buf) == unsafe.StringData(first.Get()))
	require.True(t, &buf[6] == unsafe.StringData(second.Get()))
}

func TestMapProjectCloned(t *testing.T) {
	p1 := FromOwned[HelloWorldV1Marker](HelloWorldV1{Message: "Hello World"})
	p2 := MapProjectCloned[messageMarker](p1, func(h HelloWorldV1) string { return h.Message })
	require.Equal(t, p1.Get().Message, p2.Get())
}

func TestTryMapProject(t *testing.T) {
	appendExtra := func(h HelloWorldV1) (string, error) {
		if h.Message == "" {
			return "", errors.New("example error")
		}
		return h.Message + "Extra", nil
	}

	p1 := FromOwned[HelloWorldV1Marker](HelloWorldV1{Message: "Hello World"})
	p2, err := TryMapProjectCloned[messageMarker](p1, appendExtra)
	require.NoError(t, err)
	require.Equal(t, "Hello WorldExtra", p2.Get())
	require.Equal(t, "Hello World", p1.Get().Message)

	p3, err := TryMapProject[messageMarker](p1, appendExtra)
	require.NoError(t, err)
	require.Equal(t, "Hello WorldExtra", p3.Get())

	empty := FromOwned[HelloWorldV1Marker](HelloWorldV1{})
	p4, err := TryMapProject[messageMarker](empty, appendExtra)
	require.Nil(t, p4)
	require.EqualError(t, err, "example error")
	require.Equal(t, HelloWorldV1{}, empty.Get())

	p5, err := TryMapProjectCloned[messageMarker](empty, appendExtra)
	require.Nil(t, p5)
	require.Error(t, err)
}

func TestCast(t *testing.T) {
	calls := 0
	p, err := FromStorageWith[HelloWorldV1Marker]([]byte("Demo"), func(b []byte) (HelloWorldV1, error) {
		calls++
		return helloFromBytes(b)
	})
	require.NoError(t, err)
	before := p.Get()
	cart := p.Cart()

	// Cast[messageMarker](p) would not compile: the view types differ.
	alias := Cast[helloAliasMarker](p)
	require.Equal(t, before, alias.Get())
	require.Same(t, cart, alias.Cart())
	require.Equal(t, 1, calls)
	require.Panics(t, func() { p.Get() })

	back := Cast[HelloWorldV1Marker](alias)
	require.Equal(t, "Demo", back.Get().Message)
}

func TestCloneEqual(t *testing.T) {
	p1 := FromStaticStr("Demo")
	p2 := p1.Clone()
	require.True(t, p1.Equal(p2))
	var nilPayload *HelloWorldPayload
	require.False(t, p1.Equal(nilPayload))
	require.True(t, nilPayload.Equal(nil))
}

func TestBufferConstructors(t *testing.T) {
	buf := []byte("raw")
	owned := FromOwnedBuffer(buf)
	require.NotNil(t, owned.Cart())
	require.True(t, unsafe.SliceData(buf) == unsafe.SliceData(owned.Get()))
	_, err := owned.TryUnwrapOwned()
	require.ErrorIs(t, err, ErrInvalidState)

	static := FromStaticBuffer([]byte("static"))
	require.Nil(t, static.Cart())
	b, err := static.TryUnwrapOwned()
	require.NoError(t, err)
	require.Equal(t, []byte("static"), b)

	yoked := FromYokedBuffer(owned.Clone().yoke)
	require.True(t, yoked.Cart().Same(owned.Cart()))
	require.Equal(t, 2, owned.Cart().Refs())
	owned.Release()
	require.Equal(t, []byte("raw"), yoked.Get())
	require.Equal(t, 1, yoked.Cart().Refs())
}

func TestBufferCloneAppendIsolation(t *testing.T) {
	raw := make([]byte, 5, 32)
	copy(raw, "Hello")
	p := FromOwnedBuffer(raw)
	c := p.Clone()

	p.WithMut(func(b *[]byte) { *b = append(*b, " World"...) })
	c.WithMut(func(b *[]byte) { *b = append(*b, "!!!!!!"...) })
	require.Equal(t, "Hello World", string(p.Get()))
	require.Equal(t, "Hello!!!!!!", string(c.Get()))
	require.Equal(t, "Hello", string(p.Cart().Bytes()))
	require.Equal(t, 5, cap(p.Cart().Bytes()))
}

func TestBufferCloneWriteIsolation(t *testing.T) {
	p := FromOwnedBuffer([]byte("Hello"))
	c := p.Clone()
	p.WithMut(func(b *[]byte) { (*b)[0] = 'J' })
	require.Equal(t, "Jello", string(p.Get()))
	require.Equal(t, "Hello", string(c.Get()))
	require.Equal(t, "Hello", string(c.Cart().Bytes()))

	// a second mutation keeps writing to the private copy
	p.WithMut(func(b *[]byte) { (*b)[1] = 'u' })
	require.Equal(t, "Jullo", string(p.Get()))
	require.Equal(t, "Hello", string(c.Get()))
}

func TestStaticBufferWriteIsolation(t *testing.T) {
	static := []byte("static")
	p := FromStaticBuffer(static)
	p.WithMut(func(b *[]byte) { (*b)[0] = 'S' })
	require.Equal(t, "Static", string(p.Get()))
	require.Equal(t, "static", string(static))
}

func TestZeroValuePayload(t *testing.T) {
	var p HelloWorldPayload
	require.NotPanics(t, func() { p.Get() })
	require.Equal(t, HelloWorldV1{}, p.Get())
	require.Nil(t, p.Cart())
	require.True(t, p.Equal(FromOwned[HelloWorldV1Marker](HelloWorldV1{})))

	p.WithMut(func(h *HelloWorldV1) { h.Message = "set" })
	require.Equal(t, "set", p.Clone().Get().Message)

	var q HelloWorldPayload
	v, err := q.TryUnwrapOwned()
	require.NoError(t, err)
	require.Equal(t, HelloWorldV1{}, v)

	var r HelloWorldPayload
	m := MapProject[messageMarker](&r, func(h HelloWorldV1) string { return h.Message })
	require.Equal(t, "", m.Get())
}

func TestDataErrorFormatting(t *testing.T) {
	err := WithMarker[HelloWorldV1Marker](ErrMissingPayload).WithContext("lookup %s", "en")
	require.Equal(t, "provider: missing payload: provider.HelloWorldV1Marker (lookup en)", err.Error())
	require.ErrorIs(t, err, ErrMissingPayload)
	require.NotErrorIs(t, err, ErrInvalidState)

	inner := errors.New("inner")
	wrapped := ErrUnsupportedFormat.WithError(inner)
	require.ErrorIs(t, wrapped, inner)
	require.ErrorIs(t, wrapped, ErrUnsupportedFormat)
	// sentinels are never modified
	require.Empty(t, ErrUnsupportedFormat.Context)
	require.Nil(t, ErrUnsupportedFormat.Err)
}
