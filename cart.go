package yoke

// Cart is a reference-counted handle to an immutable byte buffer.
// Every handle obtained from NewCart or Clone must be released exactly once;
// the bytes are dropped when the last handle goes away.
type Cart struct {
	box      *cartBox
	released bool
}

type cartBox struct {
	data []byte
	refs refcount
	free func([]byte)
}

// NewCart takes ownership of data. The caller must not write to data afterwards.
func NewCart(data []byte) *Cart {
	return NewCartFunc(data, nil)
}

// NewCartFunc is NewCart with a hook that receives the bytes once the last
// handle is released, e.g. to hand them back to a pool.
// The stored slice is clipped to its length so appends to it reallocate.
func NewCartFunc(data []byte, free func([]byte)) *Cart {
	b := &cartBox{data: data[:len(data):len(data)], free: free}
	b.refs.init()
	return &Cart{box: b}
}

// Clone returns a new handle to the same bytes.
func (c *Cart) Clone() *Cart {
	if c.released {
		panic("yoke: clone of released cart")
	}
	c.box.refs.inc()
	return &Cart{box: c.box}
}

// Release drops this handle. Calling it twice on the same handle is a no-op.
func (c *Cart) Release() {
	if c == nil || c.released {
		return
	}
	c.released = true
	if c.box.refs.dec() > 0 {
		return
	}
	data := c.box.data
	c.box.data = nil
	if c.box.free != nil {
		c.box.free(data)
	}
}

// Bytes returns the shared buffer, or nil once this handle was released.
func (c *Cart) Bytes() []byte {
	if c == nil || c.released {
		return nil
	}
	return c.box.data
}

// Refs reports the number of live handles sharing the bytes.
func (c *Cart) Refs() int {
	if c == nil {
		return 0
	}
	return c.box.refs.load()
}

// Same reports whether c and other share the same underlying buffer.
func (c *Cart) Same(other *Cart) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.box == other.box
}
