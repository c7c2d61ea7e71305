package ply

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

const cubeASCII = `ply
format ascii 1.0
comment cube
element vertex 4
property float x
property float y
property float z
element face 2
property list uchar int vertex_indices
end_header
0 0 0
1 0 0
1 1 0
0 1 0
3 0 1 2
3 2 3 0
`

type vertex struct {
	X, Y, Z float32
}

func TestReaderParsesCubeHeader(t *testing.T) {
	r, err := NewReader(strings.NewReader(cubeASCII))
	require.NoError(t, err)
	require.Equal(t, format.ASCII, r.Format())
	require.Len(t, r.Elements(), 2)
	require.Equal(t, "cube", r.Comments()[0].Text)

	idx, ok := r.Find("face")
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestReaderFindFastForwardsThenReads(t *testing.T) {
	r, err := NewReader(strings.NewReader(cubeASCII))
	require.NoError(t, err)

	idx, ok := r.Find("face")
	require.True(t, ok)
	require.Equal(t, 1, idx)

	ed, err := r.ReadElementData(idx)
	require.NoError(t, err)
	require.Equal(t, 3, ed.List(0, 0).Len())
}

func TestReaderFindRejectsAlreadyConsumedElement(t *testing.T) {
	r, err := NewReader(strings.NewReader(cubeASCII))
	require.NoError(t, err)

	require.NoError(t, r.Skip(0))
	require.NoError(t, r.Skip(1))

	_, ok := r.Find("vertex")
	require.False(t, ok)
}

func TestReaderReadIntoThenReadElementData(t *testing.T) {
	r, err := NewReader(strings.NewReader(cubeASCII))
	require.NoError(t, err)

	records := make([]vertex, 4)
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)

	require.NoError(t, r.ReadInto(0, l))
	require.Equal(t, float32(1), records[1].X)

	ed, err := r.ReadElementData(1)
	require.NoError(t, err)
	require.Equal(t, 3, ed.List(0, 0).Len())
}

func TestReaderRejectsOutOfOrderAccess(t *testing.T) {
	r, err := NewReader(strings.NewReader(cubeASCII))
	require.NoError(t, err)

	_, err = r.ReadElementData(1)
	require.Error(t, err)
}

func TestConvertASCIIToBinaryLittleEndian(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Convert(strings.NewReader(cubeASCII), &out, format.BinaryLittleEndian))

	r, err := NewReader(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	require.Equal(t, format.BinaryLittleEndian, r.Format())
	require.Len(t, r.Elements(), 2)

	vertElem, _ := r.Element("vertex")
	require.Equal(t, 4, vertElem.Count)

	records := make([]vertex, 4)
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
	require.NoError(t, err)
	require.NoError(t, r.ReadInto(0, l))
	require.Equal(t, float32(1), records[1].X)

	require.NoError(t, r.Skip(1))
}

func TestWriteHeaderInterleavesCommentsAtRecordedLines(t *testing.T) {
	s := schema.Schema{
		Format: format.ASCII,
		Comments: []schema.Comment{
			{Line: 3, Text: "before vertex"},
			{Line: 6, Text: "between properties"},
			{Line: 100, Text: "trailing"},
		},
		Elements: []schema.Element{
			{
				Name:  "vertex",
				Count: 1,
				Properties: []schema.Property{
					schema.NewScalarProperty("x", kind.Float32),
					schema.NewScalarProperty("y", kind.Float32),
				},
			},
		},
	}

	var out bytes.Buffer
	w, err := ioutil.NewWriter(&out)
	require.NoError(t, err)
	require.NoError(t, writeHeader(w, s))
	require.NoError(t, w.Flush())

	want := "ply\n" +
		"format ascii 1.0\n" +
		"comment before vertex\n" +
		"element vertex 1\n" +
		"property float x\n" +
		"comment between properties\n" +
		"property float y\n" +
		"comment trailing\n" +
		"end_header\n"
	require.Equal(t, want, out.String())
}

func TestWriterQueueLayoutRoundtrip(t *testing.T) {
	w := NewWriter(format.ASCII, WithComment("made by a test"))

	records := []vertex{{X: 1, Y: 2, Z: 3}}
	l, err := layout.New(records, layout.Scalar(kind.Float32), layout.Scalar(kind.Float32), layout.Scalar(kind.Float32))
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
	w.QueueLayout(elem, l)

	var out bytes.Buffer
	require.NoError(t, w.Commit(&out))
	require.Contains(t, out.String(), "comment made by a test")
	require.Contains(t, out.String(), "1 2 3")
}
