package fractus

import (
	"bytes"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/rawbytedev/yoke/internal/common"
)

type Decoder struct {
	Opts Options
}

func NewDecoder(opts Options) *Decoder {
	return &Decoder{Opts: opts}
}

// Decode fills the struct pointed to by out from data.
// Strings and byte slices alias data when Opts.UnsafeStrings is set.
func (d *Decoder) Decode(data []byte, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNotStructPtr
	}
	dst := v.Elem()
	plan, err := getPlan(dst.Type())
	if err != nil {
		return err
	}

	cur := common.Cursor{Buf: data}
	n, err := cur.VarUint()
	if err != nil {
		return fmt.Errorf("field count: %w", ErrTruncated)
	}
	if n != uint64(len(plan.fields)) {
		return fmt.Errorf("%w: got %d, want %d", ErrFieldCount, n, len(plan.fields))
	}

	for _, field := range plan.fields {
		fv := dst.Field(field.idx)
		switch {
		case common.IsFixedKind(field.kind):
			b, err := cur.Next(common.FixedSize(field.kind))
			if err != nil {
				return fmt.Errorf("field %d: %w", field.idx, ErrTruncated)
			}
			common.SetFixed(fv, b, field.kind)
		case field.kind == reflect.String:
			b, err := cur.Prefixed()
			if err != nil {
				return fmt.Errorf("field %d: %w", field.idx, ErrTruncated)
			}
			fv.SetString(d.str(b))
		case field.elemKind == reflect.Uint8:
			b, err := cur.Prefixed()
			if err != nil {
				return fmt.Errorf("field %d: %w", field.idx, ErrTruncated)
			}
			if !d.Opts.UnsafeStrings {
				b = bytes.Clone(b)
			}
			fv.SetBytes(b)
		default:
			if err := d.decodeList(&cur, fv, field.elemKind); err != nil {
				return fmt.Errorf("field %d: %w", field.idx, err)
			}
		}
	}
	return nil
}

func (d *Decoder) decodeList(cur *common.Cursor, fv reflect.Value, elemKind reflect.Kind) error {
	cnt, err := cur.VarUint()
	if err != nil {
		return ErrTruncated
	}
	// every element takes at least one byte
	if cnt > uint64(len(cur.Buf)-cur.Pos) {
		return ErrTruncated
	}
	slice := reflect.MakeSlice(fv.Type(), int(cnt), int(cnt))
	for i := 0; i < int(cnt); i++ {
		ev := slice.Index(i)
		if elemKind == reflect.String {
			b, err := cur.Prefixed()
			if err != nil {
				return ErrTruncated
			}
			ev.SetString(d.str(b))
			continue
		}
		b, err := cur.Next(common.FixedSize(elemKind))
		if err != nil {
			return ErrTruncated
		}
		common.SetFixed(ev, b, elemKind)
	}
	fv.Set(slice)
	return nil
}

func (d *Decoder) str(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if d.Opts.UnsafeStrings {
		return unsafe.String(&b[0], len(b))
	}
	return string(b)
}

// Unmarshal decodes data into out, copying strings and byte slices.
func Unmarshal(data []byte, out any) error {
	return NewDecoder(Options{}).Decode(data, out)
}
