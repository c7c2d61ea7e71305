package layout

import (
	"testing"

	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/schema"
	"github.com/stretchr/testify/require"
)

type vertex struct {
	X, Y, Z float32
}

func TestNewScalarLayout(t *testing.T) {
	records := make([]vertex, 4)
	l, err := New(records, Scalar(kind.Float32), Scalar(kind.Float32), Scalar(kind.Float32))
	require.NoError(t, err)
	require.Equal(t, 4, l.Count)
	require.Equal(t, 12, l.Stride)
	require.Equal(t, 0, l.FieldOffset(0))
	require.Equal(t, 4, l.FieldOffset(1))
	require.Equal(t, 8, l.FieldOffset(2))
}

func TestIsMemcpyable(t *testing.T) {
	records := make([]vertex, 1)
	l, err := New(records, Scalar(kind.Float32), Scalar(kind.Float32), Scalar(kind.Float32))
	require.NoError(t, err)

	props := []schema.Property{
		schema.NewScalarProperty("x", kind.Float32),
		schema.NewScalarProperty("y", kind.Float32),
		schema.NewScalarProperty("z", kind.Float32),
	}
	require.True(t, l.IsMemcpyable(props))

	mismatched := []schema.Property{
		schema.NewScalarProperty("x", kind.Float64),
		schema.NewScalarProperty("y", kind.Float32),
		schema.NewScalarProperty("z", kind.Float32),
	}
	require.False(t, l.IsMemcpyable(mismatched))
}

type faceRecord struct {
	Indices [3]int32
}

func TestArrayLayout(t *testing.T) {
	records := make([]faceRecord, 2)
	l, err := New(records, Array(kind.Int32, 3))
	require.NoError(t, err)
	require.Equal(t, 12, l.Stride)

	props := []schema.Property{
		schema.NewListProperty("vertex_indices", kind.Int32, kind.Uint8),
	}
	// Array-bound layouts never qualify for the memcpy fast path.
	require.False(t, l.IsMemcpyable(props))
}

type paddedRecord struct {
	Flag int8
	X    float32
}

func TestIsMemcpyableRejectsInteriorPadding(t *testing.T) {
	records := make([]paddedRecord, 1)
	l, err := New(records, Scalar(kind.Int8), Scalar(kind.Float32))
	require.NoError(t, err)

	props := []schema.Property{
		schema.NewScalarProperty("flag", kind.Int8),
		schema.NewScalarProperty("x", kind.Float32),
	}
	// Go inserts 3 bytes of padding before X; the byte ranges are not
	// contiguous so the fast path must not be taken.
	require.False(t, l.IsMemcpyable(props))
}

type widenedRecord struct {
	X float64
}

func TestScalarWidenNeverQualifiesForMemcpyFastPath(t *testing.T) {
	records := make([]widenedRecord, 1)
	l, err := New(records, ScalarWiden(kind.Float32, kind.Float64))
	require.NoError(t, err)
	require.Equal(t, kind.Float32, l.Tags[0].WireKind)
	require.Equal(t, kind.Float64, l.Tags[0].DataKind)

	props := []schema.Property{
		schema.NewScalarProperty("x", kind.Float32),
	}
	// A widening tag can never be bulk-copied since the wire and caller
	// representations are different sizes.
	require.False(t, l.IsMemcpyable(props))
}

func TestValidateAgainstRejectsOversizedLayout(t *testing.T) {
	records := make([]vertex, 1)
	l, err := New(records, Scalar(kind.Float32), Scalar(kind.Float32), Scalar(kind.Float32))
	require.NoError(t, err)

	elem := schema.Element{Name: "vertex", Properties: []schema.Property{
		schema.NewScalarProperty("x", kind.Float32),
	}}
	require.Error(t, l.ValidateAgainst(elem))
}
