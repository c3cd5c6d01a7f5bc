package fractus

import (
	"reflect"

	"github.com/rawbytedev/yoke/internal/common"
)

// Encoder reuses its output buffer between calls; the slice returned by
// Encode is only valid until the next call.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 64)}
}

func (e *Encoder) Encode(val any) ([]byte, error) {
	v := reflect.ValueOf(val)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, ErrNotStruct
	}
	plan, err := getPlan(v.Type())
	if err != nil {
		return nil, err
	}

	e.buf = e.buf[:0]
	e.buf = common.WriteVarUint(e.buf, uint64(len(plan.fields)))
	for _, field := range plan.fields {
		fv := v.Field(field.idx)
		switch {
		case common.IsFixedKind(field.kind):
			e.buf = common.AppendFixed(e.buf, fv)
		case field.kind == reflect.String:
			e.writeString(fv.String())
		case field.elemKind == reflect.Uint8:
			b := fv.Bytes()
			e.buf = common.WriteVarUint(e.buf, uint64(len(b)))
			e.buf = append(e.buf, b...)
		default:
			l := fv.Len()
			e.buf = common.WriteVarUint(e.buf, uint64(l))
			for i := 0; i < l; i++ {
				elem := fv.Index(i)
				if field.elemKind == reflect.String {
					e.writeString(elem.String())
				} else {
					e.buf = common.AppendFixed(e.buf, elem)
				}
			}
		}
	}
	return e.buf, nil
}

func (e *Encoder) writeString(s string) {
	e.buf = common.WriteVarUint(e.buf, uint64(len(s)))
	e.buf = append(e.buf, s...)
}

// Marshal encodes val into a freshly allocated buffer.
func Marshal(val any) ([]byte, error) {
	return NewEncoder().Encode(val)
}
