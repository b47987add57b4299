package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"record-mapper/primitive"
)

func TestHandler_Parse(t *testing.T) {
	tests := []struct {
		kind    primitive.KindEnum
		format  string
		text    string
		want    any
		wantErr bool
	}{
		{kind: primitive.KindInt, text: "42", want: 42},
		{kind: primitive.KindInt8, text: "-8", want: int8(-8)},
		{kind: primitive.KindInt8, text: "300", wantErr: true},
		{kind: primitive.KindInt64, text: "x", wantErr: true},
		{kind: primitive.KindUint16, text: "65535", want: uint16(65535)},
		{kind: primitive.KindUint, text: "-1", wantErr: true},
		{kind: primitive.KindFloat32, text: "1.5", want: float32(1.5)},
		{kind: primitive.KindFloat64, text: "2.25", want: 2.25},
		{kind: primitive.KindBool, text: "true", want: true},
		{kind: primitive.KindString, text: " as is ", want: " as is "},
		{kind: primitive.KindDuration, text: "1m30s", want: 90 * time.Second},
		{
			kind:   primitive.KindTime,
			format: "20060102",
			text:   "20240131",
			want:   time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.text, func(t *testing.T) {
			h, err := NewHandler(tt.kind, tt.format)
			require.NoError(t, err)

			got, err := h.Parse(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandler_Format(t *testing.T) {
	tests := []struct {
		kind    primitive.KindEnum
		format  string
		value   any
		want    string
		wantErr bool
	}{
		{kind: primitive.KindInt, value: 42, want: "42"},
		{kind: primitive.KindInt, value: "17", want: "17"},
		{kind: primitive.KindInt8, value: 200, wantErr: true},
		{kind: primitive.KindUint8, value: 256, wantErr: true},
		{kind: primitive.KindUint32, value: uint32(7), want: "7"},
		{kind: primitive.KindFloat64, value: 1.5, want: "1.5"},
		{kind: primitive.KindFloat32, value: float32(0.25), want: "0.25"},
		{kind: primitive.KindBool, value: false, want: "false"},
		{kind: primitive.KindString, value: 12, want: "12"},
		{kind: primitive.KindDuration, value: 90 * time.Second, want: "1m30s"},
		{kind: primitive.KindInt, value: []int{1}, wantErr: true},
		{
			kind:   primitive.KindTime,
			format: "20060102",
			value:  time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC),
			want:   "20240131",
		},
		{kind: primitive.KindTime, format: "20060102", value: "20240131", want: "20240131"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.want, func(t *testing.T) {
			h, err := NewHandler(tt.kind, tt.format)
			require.NoError(t, err)

			got, err := h.Format(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHandler_UnknownKind(t *testing.T) {
	_, err := NewHandler(0, "")
	require.Error(t, err)
}

func TestNewHandler_DefaultTimeLayout(t *testing.T) {
	h, err := NewHandler(primitive.KindTime, "")
	require.NoError(t, err)

	v, err := h.Parse("2024-01-31T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 31, 10, 0, 0, 0, time.UTC), v)
}
