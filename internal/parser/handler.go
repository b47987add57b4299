package parser

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"record-mapper/primitive"
)

// DefaultTimeLayout is used for time fields that do not declare a format.
const DefaultTimeLayout = time.RFC3339

// TypeHandler converts between field text and values.
type TypeHandler interface {
	Parse(text string) (any, error)
	Format(value any) (string, error)
}

// NewHandler returns the built-in handler for kind. format is the time layout
// of time fields and is ignored by the other kinds.
func NewHandler(kind primitive.KindEnum, format string) (TypeHandler, error) {
	switch {
	case kind.IsSigned():
		return intHandler{kind: kind}, nil
	case kind.IsUnsigned():
		return uintHandler{kind: kind}, nil
	case kind.IsFloat():
		return floatHandler{bits: kind.Bits()}, nil
	}

	switch kind {
	case primitive.KindBool:
		return boolHandler{}, nil
	case primitive.KindString:
		return stringHandler{}, nil
	case primitive.KindTime:
		if format == "" {
			format = DefaultTimeLayout
		}

		return timeHandler{layout: format}, nil
	case primitive.KindDuration:
		return durationHandler{}, nil
	default:
		return nil, fmt.Errorf("no type handler for kind %s", kind)
	}
}

type intHandler struct {
	kind primitive.KindEnum
}

func (h intHandler) Parse(text string) (any, error) {
	n, err := strconv.ParseInt(text, 10, h.kind.Bits())
	if err != nil {
		return nil, err
	}

	switch h.kind {
	case primitive.KindInt8:
		return int8(n), nil
	case primitive.KindInt16:
		return int16(n), nil
	case primitive.KindInt32:
		return int32(n), nil
	case primitive.KindInt64:
		return n, nil
	default:
		return int(n), nil
	}
}

func (h intHandler) Format(value any) (string, error) {
	n, err := cast.ToInt64E(value)
	if err != nil {
		return "", err
	}

	if bits := h.kind.Bits(); bits < 64 && (n < -(1<<(bits-1)) || n > 1<<(bits-1)-1) {
		return "", fmt.Errorf("%d overflows %s", n, h.kind)
	}

	return strconv.FormatInt(n, 10), nil
}

type uintHandler struct {
	kind primitive.KindEnum
}

func (h uintHandler) Parse(text string) (any, error) {
	n, err := strconv.ParseUint(text, 10, h.kind.Bits())
	if err != nil {
		return nil, err
	}

	switch h.kind {
	case primitive.KindUint8:
		return uint8(n), nil
	case primitive.KindUint16:
		return uint16(n), nil
	case primitive.KindUint32:
		return uint32(n), nil
	case primitive.KindUint64:
		return n, nil
	default:
		return uint(n), nil
	}
}

func (h uintHandler) Format(value any) (string, error) {
	n, err := cast.ToUint64E(value)
	if err != nil {
		return "", err
	}

	if bits := h.kind.Bits(); bits < 64 && n > 1<<bits-1 {
		return "", fmt.Errorf("%d overflows %s", n, h.kind)
	}

	return strconv.FormatUint(n, 10), nil
}

type floatHandler struct {
	bits int
}

func (h floatHandler) Parse(text string) (any, error) {
	f, err := strconv.ParseFloat(text, h.bits)
	if err != nil {
		return nil, err
	}

	if h.bits == 32 {
		return float32(f), nil
	}

	return f, nil
}

func (h floatHandler) Format(value any) (string, error) {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return "", err
	}

	if h.bits == 32 && math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
		return "", fmt.Errorf("%g overflows float32", f)
	}

	return strconv.FormatFloat(f, 'f', -1, h.bits), nil
}

type boolHandler struct{}

func (boolHandler) Parse(text string) (any, error) {
	return strconv.ParseBool(text)
}

func (boolHandler) Format(value any) (string, error) {
	b, err := cast.ToBoolE(value)
	if err != nil {
		return "", err
	}

	return strconv.FormatBool(b), nil
}

type stringHandler struct{}

func (stringHandler) Parse(text string) (any, error) {
	return text, nil
}

func (stringHandler) Format(value any) (string, error) {
	return cast.ToStringE(value)
}

type timeHandler struct {
	layout string
}

func (h timeHandler) Parse(text string) (any, error) {
	return time.Parse(h.layout, text)
}

func (h timeHandler) Format(value any) (string, error) {
	if s, ok := value.(string); ok {
		if _, err := time.Parse(h.layout, s); err == nil {
			return s, nil
		}
	}

	t, err := cast.ToTimeE(value)
	if err != nil {
		return "", err
	}

	return t.Format(h.layout), nil
}

type durationHandler struct{}

func (durationHandler) Parse(text string) (any, error) {
	return time.ParseDuration(text)
}

func (durationHandler) Format(value any) (string, error) {
	d, err := cast.ToDurationE(value)
	if err != nil {
		return "", err
	}

	return d.String(), nil
}
