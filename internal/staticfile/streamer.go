package staticfile

import (
	"fmt"
	"io"
	"net/http"
)

// stream copies exactly count bytes from src to w in chunks of at most
// chunkSize bytes, flushing the response after every chunk so delivery
// is paced by the transport rather than buffered whole. It returns the
// number of bytes written and the first read or write error; on error
// no further reads or writes are attempted.
func stream(w io.Writer, src io.Reader, count int64, chunkSize int) (int64, error) {
	flusher, _ := w.(http.Flusher)
	buf := make([]byte, chunkSize)

	var written int64
	for written < count {
		n := int64(chunkSize)
		if remaining := count - written; remaining < n {
			n = remaining
		}

		read, err := io.ReadFull(src, buf[:n])
		if err != nil {
			return written, fmt.Errorf("read chunk at %d: %w", written, err)
		}

		if _, err := w.Write(buf[:read]); err != nil {
			return written, fmt.Errorf("write chunk at %d: %w", written, err)
		}
		written += int64(read)

		if flusher != nil {
			flusher.Flush()
		}
	}

	return written, nil
}
