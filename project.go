package yoke

// MapProject consumes y and reshapes its view with f. The cart moves to the
// result untouched, so anything f keeps from the old view stays backed by the
// same bytes. f must not mix in data borrowed from anywhere else.
func MapProject[Y, Y2 any](y *Yoke[Y], f func(Y) Y2) *Yoke[Y2] {
	y.live()
	v := y.yokeable
	c := y.take()
	return &Yoke[Y2]{yokeable: f(v), cart: c}
}

// MapProjectCloned is MapProject without consuming y. The result holds its
// own handle on the cart; y stays valid and unchanged.
func MapProjectCloned[Y, Y2 any](y *Yoke[Y], f func(Y) Y2) *Yoke[Y2] {
	y.live()
	out := &Yoke[Y2]{yokeable: f(cloneView(y.yokeable))}
	if y.cart != nil {
		out.cart = y.cart.Clone()
	}
	return out
}

// TryMapProject is MapProject with a fallible f. On error y is left intact
// and the error is returned as is.
func TryMapProject[Y, Y2 any](y *Yoke[Y], f func(Y) (Y2, error)) (*Yoke[Y2], error) {
	y.live()
	v2, err := f(cloneView(y.yokeable))
	if err != nil {
		return nil, err
	}
	c := y.take()
	return &Yoke[Y2]{yokeable: v2, cart: c}, nil
}

// TryMapProjectCloned is MapProjectCloned with a fallible f.
func TryMapProjectCloned[Y, Y2 any](y *Yoke[Y], f func(Y) (Y2, error)) (*Yoke[Y2], error) {
	y.live()
	v2, err := f(cloneView(y.yokeable))
	if err != nil {
		return nil, err
	}
	out := &Yoke[Y2]{yokeable: v2}
	if y.cart != nil {
		out.cart = y.cart.Clone()
	}
	return out, nil
}
