package provider

import (
	"fmt"

	"github.com/rawbytedev/yoke"
)

// DataPayload holds data of the kind named by M, possibly borrowed from a
// shared byte buffer.
//
// Get returns the view; WithMut mutates it in place; the MapProject family
// reshapes it into another marker's view while keeping the same buffer.
// Cloning is cheap: the buffer is shared, only the view is copied.
// The zero value holds the zero Y as owned data.
type DataPayload[M DataMarker[Y], Y any] struct {
	yoke *yoke.Yoke[Y]
}

// inner returns the container, treating the zero DataPayload as owned zero data.
func (p *DataPayload[M, Y]) inner() *yoke.Yoke[Y] {
	if p.yoke == nil {
		p.yoke = yoke.NewOwned(*new(Y))
	}
	return p.yoke
}

// FromOwned wraps fully owned data.
func FromOwned[M DataMarker[Y], Y any](data Y) *DataPayload[M, Y] {
	return &DataPayload[M, Y]{yoke: yoke.NewOwned(data)}
}

// FromStorageWith takes ownership of data and derives the view with build.
// On error the bytes are released and the builder's error is returned as is.
func FromStorageWith[M DataMarker[Y], Y any](data []byte, build func([]byte) (Y, error)) (*DataPayload[M, Y], error) {
	y, err := yoke.TryAttachToCart(data, build)
	if err != nil {
		return nil, err
	}
	return &DataPayload[M, Y]{yoke: y}, nil
}

// FromYoke wraps an existing container.
func FromYoke[M DataMarker[Y], Y any](y *yoke.Yoke[Y]) *DataPayload[M, Y] {
	return &DataPayload[M, Y]{yoke: y}
}

// TryUnwrapOwned returns the data passed to FromOwned. It fails with
// ErrInvalidState when the data borrows from a buffer.
func (p *DataPayload[M, Y]) TryUnwrapOwned() (Y, error) {
	v, err := p.inner().TryIntoOwned()
	if err != nil {
		log.WithField("marker", markerName[M]()).Debug("payload is backed by a buffer, cannot unwrap")
		return v, WithMarker[M](ErrInvalidState).WithContext("TryUnwrapOwned").WithError(err)
	}
	return v, nil
}

// Get returns the data. Strings and slices inside may borrow from the
// payload's buffer: keep the payload, not the view, if you need it later.
func (p *DataPayload[M, Y]) Get() Y {
	return p.inner().Get()
}

// WithMut mutates the data in place. f must not keep the pointer.
func (p *DataPayload[M, Y]) WithMut(f func(*Y)) {
	p.inner().WithMut(f)
}

// Cart returns the shared buffer handle, nil for owned data.
func (p *DataPayload[M, Y]) Cart() *yoke.Cart {
	return p.inner().Cart()
}

func (p *DataPayload[M, Y]) Clone() *DataPayload[M, Y] {
	return &DataPayload[M, Y]{yoke: p.inner().Clone()}
}

func (p *DataPayload[M, Y]) Equal(other *DataPayload[M, Y]) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.inner().Equal(other.inner())
}

// Release drops the payload's hold on its buffer.
func (p *DataPayload[M, Y]) Release() {
	p.inner().Release()
}

func (p *DataPayload[M, Y]) String() string {
	return fmt.Sprintf("%+v", p.Get())
}

// MapProject consumes p and converts its data to M2's view with f.
// The buffer moves over unchanged.
func MapProject[M2 DataMarker[Y2], M DataMarker[Y], Y, Y2 any](p *DataPayload[M, Y], f func(Y) Y2) *DataPayload[M2, Y2] {
	return &DataPayload[M2, Y2]{yoke: yoke.MapProject(p.inner(), f)}
}

// MapProjectCloned is MapProject without consuming p.
func MapProjectCloned[M2 DataMarker[Y2], M DataMarker[Y], Y, Y2 any](p *DataPayload[M, Y], f func(Y) Y2) *DataPayload[M2, Y2] {
	return &DataPayload[M2, Y2]{yoke: yoke.MapProjectCloned(p.inner(), f)}
}

// TryMapProject is MapProject with a fallible f. On error p stays valid.
func TryMapProject[M2 DataMarker[Y2], M DataMarker[Y], Y, Y2 any](p *DataPayload[M, Y], f func(Y) (Y2, error)) (*DataPayload[M2, Y2], error) {
	y, err := yoke.TryMapProject(p.inner(), f)
	if err != nil {
		return nil, err
	}
	return &DataPayload[M2, Y2]{yoke: y}, nil
}

// TryMapProjectCloned is MapProjectCloned with a fallible f.
func TryMapProjectCloned[M2 DataMarker[Y2], M DataMarker[Y], Y, Y2 any](p *DataPayload[M, Y], f func(Y) (Y2, error)) (*DataPayload[M2, Y2], error) {
	y, err := yoke.TryMapProjectCloned(p.inner(), f)
	if err != nil {
		return nil, err
	}
	return &DataPayload[M2, Y2]{yoke: y}, nil
}

// Cast consumes p and relabels it with M2, which must share M's view type.
func Cast[M2 DataMarker[Y], M DataMarker[Y], Y any](p *DataPayload[M, Y]) *DataPayload[M2, Y] {
	return &DataPayload[M2, Y]{yoke: p.inner().Move()}
}
