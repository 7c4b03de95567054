package staticfile

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// flushCountingWriter records how often the streamer flushed.
type flushCountingWriter struct {
	bytes.Buffer
	flushes int
}

func (w *flushCountingWriter) Flush() { w.flushes++ }

// failingWriter accepts acceptBytes, then rejects every write.
type failingWriter struct {
	acceptBytes int
	written     int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.acceptBytes {
		return 0, errors.New("peer went away")
	}
	w.written += len(p)
	return len(p), nil
}

func Test_Stream_Delivers_Exact_Count_In_Chunks(t *testing.T) {
	req := require.New(t)
	data := strings.Repeat("0123456789", 1000) // 10000 bytes

	var out flushCountingWriter
	written, err := stream(&out, strings.NewReader(data), int64(len(data)), 1024)
	req.NoError(err)
	req.Equal(int64(len(data)), written)
	req.Equal(data, out.String())

	// ceil(10000/1024) chunks, one flush per chunk
	req.Equal(10, out.flushes)
}

func Test_Stream_Stops_At_Requested_Count(t *testing.T) {
	req := require.New(t)
	data := strings.Repeat("x", 1024)

	var out bytes.Buffer
	written, err := stream(&out, strings.NewReader(data), 100, 1024)
	req.NoError(err)
	req.Equal(int64(100), written)
	req.Equal(data[:100], out.String())
}

func Test_Stream_Aborts_On_Write_Failure(t *testing.T) {
	req := require.New(t)
	data := strings.Repeat("x", 300)

	out := &failingWriter{acceptBytes: 100}
	written, err := stream(out, strings.NewReader(data), int64(len(data)), 100)
	req.Error(err)
	req.Equal(int64(100), written)
	// The failed chunk is not retried
	req.Equal(100, out.written)
}

func Test_Stream_Aborts_On_Short_Read(t *testing.T) {
	req := require.New(t)

	// Source ends before the requested count
	var out bytes.Buffer
	written, err := stream(&out, strings.NewReader("short"), 100, 10)
	req.Error(err)
	req.Equal(int64(0), written)
}
