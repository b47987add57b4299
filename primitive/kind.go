package primitive

import (
	"fmt"
	"math"
	"strings"
)

//go:generate go tool stringer -type=KindEnum -linecomment -output=kind_string.go

// KindEnum is the value type of a field.
type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindInt      // int
	KindInt8     // int8
	KindInt16    // int16
	KindInt32    // int32
	KindInt64    // int64
	KindUint     // uint
	KindUint8    // uint8
	KindUint16   // uint16
	KindUint32   // uint32
	KindUint64   // uint64
	KindFloat32  // float32
	KindFloat64  // float64
	KindBool     // bool
	KindString   // string
	KindTime     // time
	KindDuration // duration

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

var aliases = map[string]KindEnum{
	"integer": KindInt,
	"short":   KindInt16,
	"long":    KindInt64,
	"byte":    KindUint8,
	"float":   KindFloat32,
	"double":  KindFloat64,
	"decimal": KindFloat64,
	"boolean": KindBool,
	"text":    KindString,
	"date":    KindTime,
}

// ParseKind resolves a type name as written in a layout file. Names are case
// insensitive; an empty name is KindString.
func ParseKind(name string) (KindEnum, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return KindString, nil
	}

	for k := KindInt; int(k) < KindTotal; k++ {
		if k.String() == name {
			return k, nil
		}
	}

	if k, ok := aliases[name]; ok {
		return k, nil
	}

	return 0, fmt.Errorf("unknown type %q", name)
}

// Names returns the canonical kind names in declaration order.
func Names() []string {
	names := make([]string, 0, KindTotal-1)
	for k := KindInt; int(k) < KindTotal; k++ {
		names = append(names, k.String())
	}

	return names
}

func (k KindEnum) IsValid() bool {
	return k > 0 && int(k) < KindTotal
}

func (k KindEnum) IsNumber() bool {
	return k.IsInteger() || k.IsFloat()
}

func (k KindEnum) IsInteger() bool {
	return k.IsSigned() || k.IsUnsigned()
}

func (k KindEnum) IsFloat() bool {
	switch k {
	default:
		return false
	case KindFloat32, KindFloat64:
		return true
	}
}

func (k KindEnum) IsSigned() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	}
}

func (k KindEnum) IsUnsigned() bool {
	switch k {
	default:
		return false
	case KindUint, KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	}
}

// Bits returns the width of a numeric kind and panics for anything else.
func (k KindEnum) Bits() int {
	switch k {
	default:
		panic("only numeric kinds have a meaningful bit size, but requested for: " + k.String())
	case KindInt, KindUint:
		power := 0
		for n := uint(math.MaxUint); n > 0; n >>= 1 {
			power++
		}
		return power
	case KindInt8, KindUint8:
		return 8
	case KindInt16, KindUint16:
		return 16
	case KindInt32, KindUint32, KindFloat32:
		return 32
	case KindInt64, KindUint64, KindFloat64:
		return 64
	}
}
