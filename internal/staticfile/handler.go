package staticfile

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"microweb/server/internal/filestore"
)

// Handler serves files from a Store over HTTP, with ETag-based
// conditional requests and single-range partial content. Multi-range
// requests are not supported and answered with a server error.
type Handler struct {
	store     *filestore.Store
	chunkSize int
	log       *logrus.Logger
}

// NewHandler creates a file-serving handler. chunkSize bounds how many
// bytes are read and written per streaming step.
func NewHandler(store *filestore.Store, chunkSize int, log *logrus.Logger) *Handler {
	return &Handler{
		store:     store,
		chunkSize: chunkSize,
		log:       log,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res, err := h.store.Open(r.URL.Path)
	if err != nil {
		// Unreadable files are reported like missing ones so the
		// response leaks nothing about the filesystem.
		if !errors.Is(err, filestore.ErrNotFound) {
			h.log.WithError(err).Warnf("Cannot open file for %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "404: file not found: %s\n", r.URL.Path)
		return
	}
	defer res.Close()

	size := res.Size()
	ranges := parseRanges(r.Header.Get("Range"), size)

	switch {
	case len(ranges) > 1:
		// multipart/byteranges responses are unsupported by policy
		w.WriteHeader(http.StatusInternalServerError)

	case len(ranges) == 1:
		// Range takes precedence over If-None-Match
		h.servePartial(w, r, res, ranges[0])

	case r.Header.Get("If-None-Match") == ETagFor(res.Path(), res.ModTime()):
		w.WriteHeader(http.StatusNotModified)

	default:
		h.serveFull(w, r, res)
	}
}

func (h *Handler) serveFull(w http.ResponseWriter, r *http.Request, res *filestore.FileResource) {
	size := res.Size()

	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", h.contentType(res.Path()))
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	w.Header().Set("ETag", ETagFor(res.Path(), res.ModTime()))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	h.streamBody(w, r, res, size)
}

func (h *Handler) servePartial(w http.ResponseWriter, r *http.Request, res *filestore.FileResource, rng ByteRange) {
	size := res.Size()
	if rng.Upper > size {
		rng.Upper = size
	}
	if rng.Lower >= size || rng.Lower >= rng.Upper {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
		return
	}

	if _, err := res.Seek(rng.Lower, io.SeekStart); err != nil {
		h.log.WithError(err).Errorf("Seek to %d failed for %s", rng.Lower, res.Path())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Type", h.contentType(res.Path()))
	w.Header().Set("Content-Length", strconv.FormatInt(rng.Len(), 10))
	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", rng.Lower, rng.Upper-1, size))
	w.WriteHeader(http.StatusPartialContent)

	if r.Method == http.MethodHead {
		return
	}
	h.streamBody(w, r, res, rng.Len())
}

// streamBody pumps count bytes to the client. A failed write usually
// means the peer went away; the stream is abandoned, not retried, and
// the resource is closed right here so no further reads can happen
// (the handler's deferred Close is a no-op after this).
func (h *Handler) streamBody(w http.ResponseWriter, r *http.Request, res *filestore.FileResource, count int64) {
	written, err := stream(w, res, count, h.chunkSize)
	if err != nil {
		res.Close()
		h.log.WithFields(logrus.Fields{
			"path":    r.URL.Path,
			"written": written,
			"total":   count,
		}).WithError(err).Warn("Streaming aborted")
	}
}

// contentType resolves the Content-Type for path, preferring the
// extension table and falling back to content sniffing for files the
// table does not know.
func (h *Handler) contentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	if mt, err := mimetype.DetectFile(path); err == nil {
		return mt.String()
	}
	return "application/octet-stream"
}
