// Package fractus is a compact binary struct codec.
//
// Layout: varint field count, then every exported field in declaration order.
// Fixed-width kinds are little-endian; strings and byte slices are a varint
// length followed by the bytes; other slices are a varint count followed by
// their elements.
//
// With Options.UnsafeStrings the decoder hands out strings and byte slices
// that alias the input instead of copying it. The input must then outlive the
// decoded value, which is what a yoke cart guarantees.
package fractus

import (
	"errors"
	"reflect"
	"sync"

	"github.com/rawbytedev/yoke/internal/common"
)

var (
	ErrNotStruct    = errors.New("expected struct")
	ErrNotStructPtr = errors.New("expected pointer to struct")
	ErrUnsupported  = errors.New("unsupported type")
	ErrTruncated    = errors.New("truncated input")
	ErrFieldCount   = errors.New("field count mismatch")
)

type Options struct {
	UnsafeStrings bool // zero-copy strings and byte slices; caller must keep the input alive
}

type fieldPlan struct {
	fields []fieldInfo
}

type fieldInfo struct {
	idx      int
	kind     reflect.Kind
	elemKind reflect.Kind // slices only
}

// plans caches field plans per struct type; shared by encoders and decoders.
var plans struct {
	mu sync.RWMutex
	m  map[reflect.Type]*fieldPlan
}

func getPlan(t reflect.Type) (*fieldPlan, error) {
	plans.mu.RLock()
	if p, ok := plans.m[t]; ok {
		plans.mu.RUnlock()
		return p, nil
	}
	plans.mu.RUnlock()

	p := &fieldPlan{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fi := fieldInfo{idx: i, kind: sf.Type.Kind()}
		switch {
		case common.IsFixedKind(fi.kind), fi.kind == reflect.String:
		case fi.kind == reflect.Slice:
			fi.elemKind = sf.Type.Elem().Kind()
			if !common.IsFixedKind(fi.elemKind) && fi.elemKind != reflect.String {
				return nil, ErrUnsupported
			}
		default:
			return nil, ErrUnsupported
		}
		p.fields = append(p.fields, fi)
	}

	plans.mu.Lock()
	defer plans.mu.Unlock()
	if plans.m == nil {
		plans.m = make(map[reflect.Type]*fieldPlan)
	}
	// Double-check
	if existing, ok := plans.m[t]; ok {
		return existing, nil
	}
	plans.m[t] = p
	return p, nil
}
