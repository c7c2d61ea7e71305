package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/arloliu/plyio/format"
	"github.com/arloliu/plyio/ioutil"
	"github.com/arloliu/plyio/kind"
	"github.com/arloliu/plyio/layout"
	"github.com/arloliu/plyio/schema"
	"github.com/stretchr/testify/require"
)

type vertex struct {
	X, Y, Z float32
}

func TestASCIIReadIntoScalarFastPathShape(t *testing.T) {
	body := "1 2 3\n4 5 6\n"
	r, err := ioutil.NewReader(strings.NewReader(body))
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "vertex",
		Count: 2,
		Properties: []schema.Property{
			schema.NewScalarProperty("x", kind.Float32),
			schema.NewScalarProperty("y", kind.Float32),
			schema.NewScalarProperty("z", kind.Float32),
		},
	}

	records := make([]vertex, 2)
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)

	eng := New(format.ASCII)
	require.NoError(t, eng.ReadInto(r, elem, l))

	require.Equal(t, float32(1), records[0].X)
	require.Equal(t, float32(2), records[0].Y)
	require.Equal(t, float32(3), records[0].Z)
	require.Equal(t, float32(6), records[1].Z)
}

func TestASCIITrailingPropertySkip(t *testing.T) {
	body := "1 2 3 99\n"
	r, err := ioutil.NewReader(strings.NewReader(body))
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "vertex",
		Count: 1,
		Properties: []schema.Property{
			schema.NewScalarProperty("x", kind.Float32),
			schema.NewScalarProperty("y", kind.Float32),
			schema.NewScalarProperty("z", kind.Float32),
			schema.NewScalarProperty("confidence", kind.Float32),
		},
	}

	records := make([]vertex, 1)
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)

	eng := New(format.ASCII)
	require.NoError(t, eng.ReadInto(r, elem, l))
	require.Equal(t, float32(3), records[0].Z)
}

func TestASCIIReadElementDataWithList(t *testing.T) {
	body := "3 0 1 2\n3 2 3 0\n"
	r, err := ioutil.NewReader(strings.NewReader(body))
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "face",
		Count: 2,
		Properties: []schema.Property{
			schema.NewListProperty("vertex_indices", kind.Int32, kind.Uint8),
		},
	}

	eng := New(format.ASCII)
	ed, err := eng.ReadElementData(r, elem)
	require.NoError(t, err)
	require.Equal(t, 3, ed.List(0, 0).Len())
	require.Equal(t, 3, ed.List(1, 0).Len())
}

func TestBinaryLittleEndianMemcpyFastPath(t *testing.T) {
	body := []byte{
		0, 0, 128, 63, // 1.0
		0, 0, 0, 64, // 2.0
		0, 0, 64, 64, // 3.0
	}
	r, err := ioutil.NewReader(bytes.NewReader(body))
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "vertex",
		Count: 1,
		Properties: []schema.Property{
			schema.NewScalarProperty("x", kind.Float32),
			schema.NewScalarProperty("y", kind.Float32),
			schema.NewScalarProperty("z", kind.Float32),
		},
	}

	records := make([]vertex, 1)
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)

	eng := New(format.BinaryLittleEndian)
	require.NoError(t, eng.ReadInto(r, elem, l))
	require.Equal(t, float32(1), records[0].X)
	require.Equal(t, float32(3), records[0].Z)
}

type widenedVertex struct {
	X, Y, Z float64
}

func TestASCIIReadIntoWidensFloatPropertyIntoDoubleField(t *testing.T) {
	body := "1.5 2.5 3.5\n"
	r, err := ioutil.NewReader(strings.NewReader(body))
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "vertex",
		Count: 1,
		Properties: []schema.Property{
			schema.NewScalarProperty("x", kind.Float32),
			schema.NewScalarProperty("y", kind.Float32),
			schema.NewScalarProperty("z", kind.Float32),
		},
	}

	records := make([]widenedVertex, 1)
	l, err := layout.New(records,
		layout.ScalarWiden(kind.Float32, kind.Float64),
		layout.ScalarWiden(kind.Float32, kind.Float64),
		layout.ScalarWiden(kind.Float32, kind.Float64),
	)
	require.NoError(t, err)

	eng := New(format.ASCII)
	require.NoError(t, eng.ReadInto(r, elem, l))
	require.Equal(t, 1.5, records[0].X)
	require.Equal(t, 3.5, records[0].Z)
}

func TestBinaryReadIntoWidensFloatPropertyIntoDoubleField(t *testing.T) {
	body := []byte{
		0, 0, 128, 63, // 1.0
		0, 0, 0, 64, // 2.0
		0, 0, 64, 64, // 3.0
	}
	r, err := ioutil.NewReader(bytes.NewReader(body))
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "vertex",
		Count: 1,
		Properties: []schema.Property{
			schema.NewScalarProperty("x", kind.Float32),
			schema.NewScalarProperty("y", kind.Float32),
			schema.NewScalarProperty("z", kind.Float32),
		},
	}

	records := make([]widenedVertex, 1)
	l, err := layout.New(records,
		layout.ScalarWiden(kind.Float32, kind.Float64),
		layout.ScalarWiden(kind.Float32, kind.Float64),
		layout.ScalarWiden(kind.Float32, kind.Float64),
	)
	require.NoError(t, err)

	// A widening layout must not take the memcpy fast path: only 12 wire
	// bytes exist, not the 24 a []float64 fast-path read would require.
	eng := New(format.BinaryLittleEndian)
	require.NoError(t, eng.ReadInto(r, elem, l))
	require.Equal(t, 1.0, records[0].X)
	require.Equal(t, 3.0, records[0].Z)
}

func TestASCIIReadIntoRejectsWirePropertyTypeMismatch(t *testing.T) {
	body := "1 2 3\n"
	r, err := ioutil.NewReader(strings.NewReader(body))
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "vertex",
		Count: 1,
		Properties: []schema.Property{
			schema.NewScalarProperty("x", kind.Float64),
			schema.NewScalarProperty("y", kind.Float32),
			schema.NewScalarProperty("z", kind.Float32),
		},
	}

	records := make([]vertex, 1)
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)

	eng := New(format.ASCII)
	require.Error(t, eng.ReadInto(r, elem, l))
}

func TestBinaryBigEndianSwap(t *testing.T) {
	body := []byte{
		63, 128, 0, 0, // 1.0 BE
		64, 0, 0, 0, // 2.0 BE
		64, 64, 0, 0, // 3.0 BE
	}
	r, err := ioutil.NewReader(bytes.NewReader(body))
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "vertex",
		Count: 1,
		Properties: []schema.Property{
			schema.NewScalarProperty("x", kind.Float32),
			schema.NewScalarProperty("y", kind.Float32),
			schema.NewScalarProperty("z", kind.Float32),
		},
	}

	records := make([]vertex, 1)
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)

	eng := New(format.BinaryBigEndian)
	require.NoError(t, eng.ReadInto(r, elem, l))
	require.Equal(t, float32(1), records[0].X)
	require.Equal(t, float32(3), records[0].Z)
}
