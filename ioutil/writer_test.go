package ioutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriterFlushOnOverrun(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithWriterBufferSize(4))
	require.NoError(t, err)

	require.NoError(t, w.Write([]byte("ab")))
	require.NoError(t, w.Write([]byte("cd")))
	require.NoError(t, w.Write([]byte("ef")))
	require.NoError(t, w.Flush())

	require.Equal(t, "abcdef", buf.String())
}

func TestWriterBypassOversized(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithWriterBufferSize(4))
	require.NoError(t, err)

	big := bytes.Repeat([]byte{'x'}, 100)
	require.NoError(t, w.Write(big))
	require.NoError(t, w.Flush())

	require.Equal(t, big, buf.Bytes())
}

func TestWriterASCIIFormatting(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, WithWriterBufferSize(64))
	require.NoError(t, err)

	require.NoError(t, w.WriteASCIIFloat64(1.5))
	require.NoError(t, w.WriteByte(' '))
	require.NoError(t, w.WriteASCIIInt(-7))
	require.NoError(t, w.Flush())

	require.Equal(t, "1.5 -7", buf.String())
}
