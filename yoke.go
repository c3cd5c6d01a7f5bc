// Package yoke holds a parsed view together with the bytes it was parsed from.
//
// A Yoke[Y] owns at most one Cart (a reference-counted byte buffer) and one
// view of type Y derived from it. Views may alias the cart bytes (strings or
// slices produced by a zero-copy decoder); the Yoke keeps those bytes alive
// and shared for as long as any container built from them exists.
//
// Views are only derived inside a builder that receives the cart bytes, only
// mutated through WithMut, and only reshaped through the MapProject family.
package yoke

import (
	"bytes"
	"errors"
	"reflect"
)

var (
	// ErrCartAttached is returned by TryIntoOwned when the view was built from a cart.
	ErrCartAttached = errors.New("yoke: view is attached to a cart")
)

// Cloner is implemented by views that need a deep copy on Clone.
type Cloner[Y any] interface {
	Clone() Y
}

// Yoke pairs a view with the optional cart it borrows from.
type Yoke[Y any] struct {
	yokeable Y
	cart     *Cart
	moved    bool
	// detached is set once a []byte view was copied out of shared memory.
	detached bool
}

// NewOwned wraps a view that owns its data, or only references
// process-lifetime constants.
func NewOwned[Y any](y Y) *Yoke[Y] {
	return &Yoke[Y]{yokeable: y}
}

// AttachToCart takes ownership of data and derives the view from it with f.
func AttachToCart[Y any](data []byte, f func([]byte) Y) *Yoke[Y] {
	c := NewCart(data)
	return &Yoke[Y]{yokeable: f(c.Bytes()), cart: c}
}

// TryAttachToCart is AttachToCart with a fallible builder. On error the bytes
// are released and the builder's error is returned as is.
func TryAttachToCart[Y any](data []byte, f func([]byte) (Y, error)) (*Yoke[Y], error) {
	return TryAttachToCartFunc(data, nil, f)
}

// TryAttachToCartFunc is TryAttachToCart with a free hook on the cart.
func TryAttachToCartFunc[Y any](data []byte, free func([]byte), f func([]byte) (Y, error)) (*Yoke[Y], error) {
	c := NewCartFunc(data, free)
	y, err := f(c.Bytes())
	if err != nil {
		c.Release()
		return nil, err
	}
	return &Yoke[Y]{yokeable: y, cart: c}, nil
}

func (y *Yoke[Y]) live() {
	if y.moved {
		panic("yoke: use of moved value")
	}
}

// Get returns the view. Anything inside it that aliases the cart is only
// valid while y (or a clone) is alive, and must not be written to.
func (y *Yoke[Y]) Get() Y {
	y.live()
	return y.yokeable
}

// WithMut runs f once with exclusive access to the view. The pointer must not
// be retained after f returns.
//
// A []byte view is copy-on-write: the first WithMut after construction or
// Clone hands f a private copy, so writes never reach the cart, static
// bytes, or other clones.
func (y *Yoke[Y]) WithMut(f func(*Y)) {
	y.live()
	if b, ok := any(&y.yokeable).(*[]byte); ok && !y.detached {
		*b = bytes.Clone(*b)
		y.detached = true
	}
	f(&y.yokeable)
}

// Cart returns the attached cart handle, or nil for owned views.
func (y *Yoke[Y]) Cart() *Cart {
	y.live()
	return y.cart
}

// TryIntoOwned returns the view if no cart is attached, consuming y.
// A view derived from a cart is never handed out as owned.
func (y *Yoke[Y]) TryIntoOwned() (Y, error) {
	y.live()
	if y.cart != nil {
		var zero Y
		return zero, ErrCartAttached
	}
	v := y.yokeable
	y.take()
	return v, nil
}

// Clone shares the cart and copies the view.
func (y *Yoke[Y]) Clone() *Yoke[Y] {
	y.live()
	out := &Yoke[Y]{yokeable: cloneView(y.yokeable)}
	y.detached = false
	if y.cart != nil {
		out.cart = y.cart.Clone()
	}
	return out
}

// Equal compares views; the carts are not compared.
func (y *Yoke[Y]) Equal(other *Yoke[Y]) bool {
	y.live()
	other.live()
	return equalView(y.yokeable, other.yokeable)
}

// Move transfers the view and cart to a new container, leaving y moved.
func (y *Yoke[Y]) Move() *Yoke[Y] {
	y.live()
	v, d := y.yokeable, y.detached
	c := y.take()
	return &Yoke[Y]{yokeable: v, cart: c, detached: d}
}

// Release drops the cart handle held by y. y must not be used afterwards.
func (y *Yoke[Y]) Release() {
	if y.moved {
		return
	}
	c := y.cart
	y.take()
	c.Release()
}

// take marks y as moved without touching the cart refcount.
func (y *Yoke[Y]) take() *Cart {
	c := y.cart
	var zero Y
	y.yokeable = zero
	y.cart = nil
	y.detached = false
	y.moved = true
	return c
}

func cloneView[Y any](v Y) Y {
	if c, ok := any(v).(Cloner[Y]); ok {
		return c.Clone()
	}
	return v
}

func equalView[Y any](a, b Y) bool {
	if e, ok := any(a).(interface{ Equal(Y) bool }); ok {
		return e.Equal(b)
	}
	return reflect.DeepEqual(a, b)
}
