// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Field-wise equality, ordering, and hashing for instances.
package object

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/specialistvlad/typegrid/internal/value"
)

// Equal reports whether other is an instance of the same type whose fields
// are pairwise equal. Instances of different types return ErrNotComparable.
func (i *Instance) Equal(other *Instance) (bool, error) {
	if i == nil && other == nil {
		return true, nil
	}
	if i == nil || other == nil || i.typ != other.typ {
		return false, fmt.Errorf("%w: %s and %s", ErrNotComparable, typeName(i), typeName(other))
	}
	if i == other {
		return true, nil
	}
	a, b := i.Values(), other.Values()
	for idx, f := range i.typ.fields {
		eq, err := value.Equal(a[idx], b[idx])
		if err != nil {
			return false, fmt.Errorf("%s.%s: %w", i.typ.name, f.Name, err)
		}
		if !eq {
			return false, nil
		}
	}
	return true, nil
}

// Compare orders instances of the same type field by field in declaration
// order. The first field that differs decides. Instances of different types
// return ErrNotComparable.
func (i *Instance) Compare(other *Instance) (int, error) {
	if i == nil || other == nil || i.typ != other.typ {
		return 0, fmt.Errorf("%w: %s and %s", ErrNotComparable, typeName(i), typeName(other))
	}
	a, b := i.Values(), other.Values()
	for idx, f := range i.typ.fields {
		eq, err := value.Equal(a[idx], b[idx])
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %w", i.typ.name, f.Name, err)
		}
		if eq {
			continue
		}
		c, err := value.Compare(a[idx], b[idx])
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %w", i.typ.name, f.Name, err)
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// Less reports whether i orders before other.
func (i *Instance) Less(other *Instance) (bool, error) {
	c, err := i.Compare(other)
	return c < 0, err
}

// Hash combines the type name with the hashes of the field values, so equal
// instances hash equally.
func (i *Instance) Hash() (uint64, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(i.typ.name))
	for idx, v := range i.Values() {
		fh, err := value.Hash(v)
		if err != nil {
			return 0, fmt.Errorf("%s.%s: %w", i.typ.name, i.typ.fields[idx].Name, err)
		}
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], fh)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64(), nil
}

// EqualValue implements value.Equaler.
func (i *Instance) EqualValue(other any) (bool, error) {
	o, ok := other.(*Instance)
	if !ok {
		return false, fmt.Errorf("%w: %s and %T", ErrNotComparable, typeName(i), other)
	}
	return i.Equal(o)
}

// CompareValue implements value.Comparer.
func (i *Instance) CompareValue(other any) (int, error) {
	o, ok := other.(*Instance)
	if !ok {
		return 0, fmt.Errorf("%w: %s and %T", ErrNotComparable, typeName(i), other)
	}
	return i.Compare(o)
}

// HashValue implements value.Hasher.
func (i *Instance) HashValue() (uint64, error) { return i.Hash() }

func typeName(i *Instance) string {
	if i == nil || i.typ == nil {
		return "null"
	}
	return i.typ.name
}
