package writer

import (
	"bytes"
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

func TestASCIIWriteLayout(t *testing.T) {
	var buf bytes.Buffer

	w, err := ioutil.NewWriter(&buf)
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

	records := []vertex{{X: 1, Y: 2, Z: 3}}
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)

	eng := New(format.ASCII)
	require.NoError(t, eng.WriteLayout(w, elem, l))
	require.NoError(t, w.Flush())

	require.Equal(t, "1 2 3\n", buf.String())
}

func TestASCIIWriteLayoutZeroFillsTrailingProperty(t *testing.T) {
	var buf bytes.Buffer

	w, err := ioutil.NewWriter(&buf)
	require.NoError(t, err)

	elem := schema.Element{
		Name:  "vertex",
		Count: 1,
		Properties: []schema.Property{
			schema.NewScalarProperty("x", kind.Float32),
			schema.NewScalarProperty("confidence", kind.Float32),
		},
	}

	records := []struct{ X float32 }{{X: 1}}
	l, err := layout.New(records, layout.Scalar(kind.Float32))
	require.NoError(t, err)

	eng := New(format.ASCII)
	require.NoError(t, eng.WriteLayout(w, elem, l))
	require.NoError(t, w.Flush())

	require.Equal(t, "1 0\n", buf.String())
}

type widenedVertex struct {
	X, Y, Z float64
}

func TestASCIIWriteLayoutNarrowsDoubleFieldToFloatProperty(t *testing.T) {
	var buf bytes.Buffer

	w, err := ioutil.NewWriter(&buf)
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

	records := []widenedVertex{{X: 1.5, Y: 2.5, Z: 3.5}}
	l, err := layout.New(records,
		layout.ScalarWiden(kind.Float32, kind.Float64),
		layout.ScalarWiden(kind.Float32, kind.Float64),
		layout.ScalarWiden(kind.Float32, kind.Float64),
	)
	require.NoError(t, err)

	eng := New(format.ASCII)
	require.NoError(t, eng.WriteLayout(w, elem, l))
	require.NoError(t, w.Flush())

	require.Equal(t, "1.5 2.5 3.5\n", buf.String())
}

func TestBinaryLittleEndianWriteLayoutNarrowsDoubleFieldToFloatProperty(t *testing.T) {
	var buf bytes.Buffer

	w, err := ioutil.NewWriter(&buf)
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

	records := []widenedVertex{{X: 1, Y: 2, Z: 3}}
	l, err := layout.New(records,
		layout.ScalarWiden(kind.Float32, kind.Float64),
		layout.ScalarWiden(kind.Float32, kind.Float64),
		layout.ScalarWiden(kind.Float32, kind.Float64),
	)
	require.NoError(t, err)

	eng := New(format.BinaryLittleEndian)
	require.NoError(t, eng.WriteLayout(w, elem, l))
	require.NoError(t, w.Flush())

	// Narrowed to float32 (4 bytes each), not float64 (8 bytes each).
	require.Equal(t, 12, buf.Len())
	require.Equal(t, byte(0x3f), buf.Bytes()[3])
}

func TestBinaryLittleEndianRoundtrip(t *testing.T) {
	var buf bytes.Buffer

	w, err := ioutil.NewWriter(&buf)
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

	records := []vertex{{X: 1, Y: 2, Z: 3}}
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)

	eng := New(format.BinaryLittleEndian)
	require.NoError(t, eng.WriteLayout(w, elem, l))
	require.NoError(t, w.Flush())
	require.Equal(t, 12, buf.Len())
	require.Equal(t, byte(0x3f), buf.Bytes()[3])
}
