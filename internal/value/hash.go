// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package value

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
	"reflect"
)

// Hasher is implemented by values with their own content hash.
type Hasher interface {
	HashValue() (uint64, error)
}

const (
	tagNil byte = iota
	tagNumber
	tagFloat
	tagString
	tagBool
	tagSequence
	tagMapping
	tagStruct
	tagPointer
	tagCustom
)

// Hash returns a content hash consistent with Equal: values that compare
// equal hash equal. Funcs, channels, and unsafe pointers return
// ErrUnhashable.
func Hash(v any) (uint64, error) {
	h := fnv.New64a()
	if err := writeHash(h, v); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

type hashWriter interface {
	Write(p []byte) (int, error)
}

func writeHash(w hashWriter, v any) error {
	if v == nil {
		w.Write([]byte{tagNil})
		return nil
	}
	if hv, ok := v.(Hasher); ok {
		sum, err := hv.HashValue()
		if err != nil {
			return err
		}
		writeTagged(w, tagCustom, sum)
		return nil
	}

	rv := reflect.ValueOf(v)
	switch {
	case isSigned(rv):
		writeTagged(w, tagNumber, uint64(rv.Int()))
		return nil
	case isUnsigned(rv):
		u := rv.Uint()
		if u > math.MaxInt64 {
			writeTagged(w, tagFloat, math.Float64bits(float64(u)))
			return nil
		}
		writeTagged(w, tagNumber, u)
		return nil
	case isFloat(rv):
		f := rv.Float()
		// Integral floats hash like the equal integer.
		if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
			writeTagged(w, tagNumber, uint64(int64(f)))
			return nil
		}
		writeTagged(w, tagFloat, math.Float64bits(f))
		return nil
	}

	switch rv.Kind() {
	case reflect.String:
		w.Write([]byte{tagString})
		writeLen(w, rv.Len())
		w.Write([]byte(rv.String()))
	case reflect.Bool:
		if rv.Bool() {
			w.Write([]byte{tagBool, 1})
		} else {
			w.Write([]byte{tagBool, 0})
		}
	case reflect.Slice, reflect.Array:
		w.Write([]byte{tagSequence})
		writeLen(w, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if err := writeHash(w, rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
	case reflect.Map:
		// Entry hashes are summed so iteration order does not matter.
		var sum uint64
		iter := rv.MapRange()
		for iter.Next() {
			entry := fnv.New64a()
			if err := writeHash(entry, iter.Key().Interface()); err != nil {
				return err
			}
			if err := writeHash(entry, iter.Value().Interface()); err != nil {
				return err
			}
			sum += entry.Sum64()
		}
		writeTagged(w, tagMapping, sum)
	case reflect.Struct:
		w.Write([]byte{tagStruct})
		w.Write([]byte(rv.Type().String()))
		for i := 0; i < rv.NumField(); i++ {
			if !rv.Type().Field(i).IsExported() {
				continue
			}
			if err := writeHash(w, rv.Field(i).Interface()); err != nil {
				return err
			}
		}
	case reflect.Pointer:
		writeTagged(w, tagPointer, uint64(rv.Pointer()))
	default:
		return fmt.Errorf("%w: %T", ErrUnhashable, v)
	}
	return nil
}

func writeTagged(w hashWriter, tag byte, n uint64) {
	var buf [9]byte
	buf[0] = tag
	binary.LittleEndian.PutUint64(buf[1:], n)
	w.Write(buf[:])
}

func writeLen(w hashWriter, n int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	w.Write(buf[:])
}
