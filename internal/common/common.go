package common

import (
	"encoding/binary"
	"errors"
	"math"
	"reflect"
)

// ErrShortBuffer is returned when a read runs past the end of the input.
var ErrShortBuffer = errors.New("short buffer")

// FixedSize returns the byte width of a fixed-size primitive kind, or -1.
func FixedSize(k reflect.Kind) int {
	if int(k) < len(fixedWidth) && fixedWidth[k] > 0 {
		return fixedWidth[k]
	}
	return -1
}

var fixedWidth = [...]int{
	reflect.Bool: 1, reflect.Int8: 1, reflect.Uint8: 1,
	reflect.Int16: 2, reflect.Uint16: 2,
	reflect.Int32: 4, reflect.Uint32: 4, reflect.Float32: 4,
	reflect.Int64: 8, reflect.Uint64: 8, reflect.Float64: 8,
}

// IsFixedKind reports whether k is a fixed-size primitive kind.
func IsFixedKind(k reflect.Kind) bool { return FixedSize(k) > 0 }

// WriteVarUint appends the unsigned varint encoding of x to buf.
func WriteVarUint(buf []byte, x uint64) []byte {
	return binary.AppendUvarint(buf, x)
}

// ReadVarUint decodes a varint from b returning value and bytes consumed.
// It returns 0, 0 on truncated or overlong input.
func ReadVarUint(b []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == binary.MaxVarintLen64 {
			return 0, 0
		}
		x |= uint64(c&0x7F) << s
		if c&0x80 == 0 {
			return x, i + 1
		}
		s += 7
	}
	return 0, 0
}

// AppendFixed appends the little-endian encoding of v, which must be of a fixed kind.
func AppendFixed(dst []byte, v reflect.Value) []byte {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return append(dst, 1)
		}
		return append(dst, 0)
	case reflect.Int8:
		return append(dst, byte(v.Int()))
	case reflect.Uint8:
		return append(dst, byte(v.Uint()))
	case reflect.Int16:
		return binary.LittleEndian.AppendUint16(dst, uint16(v.Int()))
	case reflect.Uint16:
		return binary.LittleEndian.AppendUint16(dst, uint16(v.Uint()))
	case reflect.Int32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v.Int()))
	case reflect.Uint32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v.Uint()))
	case reflect.Int64:
		return binary.LittleEndian.AppendUint64(dst, uint64(v.Int()))
	case reflect.Uint64:
		return binary.LittleEndian.AppendUint64(dst, v.Uint())
	case reflect.Float32:
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v.Float()))
	default:
		panic("common: not a fixed kind")
	}
}

// SetFixed decodes a fixed-width primitive from b and sets dst.
func SetFixed(dst reflect.Value, b []byte, k reflect.Kind) {
	switch k {
	case reflect.Bool:
		dst.SetBool(b[0] != 0)
	case reflect.Int8:
		dst.SetInt(int64(int8(b[0])))
	case reflect.Uint8:
		dst.SetUint(uint64(b[0]))
	case reflect.Int16:
		dst.SetInt(int64(int16(binary.LittleEndian.Uint16(b))))
	case reflect.Uint16:
		dst.SetUint(uint64(binary.LittleEndian.Uint16(b)))
	case reflect.Int32:
		dst.SetInt(int64(int32(binary.LittleEndian.Uint32(b))))
	case reflect.Uint32:
		dst.SetUint(uint64(binary.LittleEndian.Uint32(b)))
	case reflect.Int64:
		dst.SetInt(int64(binary.LittleEndian.Uint64(b)))
	case reflect.Uint64:
		dst.SetUint(binary.LittleEndian.Uint64(b))
	case reflect.Float32:
		dst.SetFloat(float64(math.Float32frombits(binary.LittleEndian.Uint32(b))))
	case reflect.Float64:
		dst.SetFloat(math.Float64frombits(binary.LittleEndian.Uint64(b)))
	}
}

// Cursor reads length-prefixed and fixed-width values from a byte slice.
type Cursor struct {
	Buf []byte
	Pos int
}

// Next returns the next n bytes without copying.
func (c *Cursor) Next(n int) ([]byte, error) {
	if n < 0 || n > len(c.Buf)-c.Pos {
		return nil, ErrShortBuffer
	}
	b := c.Buf[c.Pos : c.Pos+n : c.Pos+n]
	c.Pos += n
	return b, nil
}

// VarUint reads a varint.
func (c *Cursor) VarUint() (uint64, error) {
	x, n := ReadVarUint(c.Buf[c.Pos:])
	if n == 0 {
		return 0, ErrShortBuffer
	}
	c.Pos += n
	return x, nil
}

// Prefixed reads a varint length followed by that many bytes.
func (c *Cursor) Prefixed() ([]byte, error) {
	l, err := c.VarUint()
	if err != nil {
		return nil, err
	}
	if l > uint64(len(c.Buf)-c.Pos) {
		return nil, ErrShortBuffer
	}
	return c.Next(int(l))
}
