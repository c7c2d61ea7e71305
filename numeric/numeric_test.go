package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSignedInt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		bits int
		want int64
		n    int
	}{
		{"simple", "42", 32, 42, 2},
		{"negative", "-17", 32, -17, 3},
		{"plus", "+5", 32, 5, 2},
		{"stops at delimiter", "123 456", 32, 123, 3},
		{"overflow saturates max", "999999999999", 8, math.MaxInt8, 12},
		{"overflow saturates min", "-999999999999", 8, math.MinInt8, 13},
		{"empty", "", 32, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n := ParseSignedInt([]byte(tt.in), tt.bits)
			require.Equal(t, tt.want, v)
			require.Equal(t, tt.n, n)
		})
	}
}

func TestParseUnsignedInt(t *testing.T) {
	v, n := ParseUnsignedInt([]byte("65535"), 16)
	require.Equal(t, uint64(65535), v)
	require.Equal(t, 5, n)

	v, n = ParseUnsignedInt([]byte("99999"), 16)
	require.Equal(t, uint64(math.MaxUint16), v)
	require.Equal(t, 5, n)
}

func TestParseFloat64(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.5", 1.5},
		{"-2.25", -2.25},
		{"1e3", 1000},
		{"-1.5e-2", -0.015},
		{"0", 0},
	}

	for _, tt := range tests {
		v, n := ParseFloat64([]byte(tt.in))
		require.Equal(t, tt.want, v)
		require.Equal(t, len(tt.in), n)
	}
}

func TestParseFloat32(t *testing.T) {
	v, n := ParseFloat32([]byte("3.25"))
	require.Equal(t, float32(3.25), v)
	require.Equal(t, 4, n)
}

func TestFormatRoundtrip(t *testing.T) {
	b := FormatFloat64(nil, 1.0/3.0)
	v, n := ParseFloat64(b)
	require.Equal(t, 1.0/3.0, v)
	require.Equal(t, len(b), n)

	bi := FormatSignedInt(nil, -123)
	require.Equal(t, "-123", string(bi))

	bu := FormatUnsignedInt(nil, 456)
	require.Equal(t, "456", string(bu))
}
