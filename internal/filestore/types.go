package filestore

import (
	"os"
	"sync"
	"time"
)

// FileResource is an open handle to a regular file being served. It is
// owned by exactly one request: the read marker advances as the request
// streams, and Close is safe to call from every exit path (the second
// and later calls are no-ops).
type FileResource struct {
	file *os.File
	path string
	info os.FileInfo

	closeOnce sync.Once
	closeErr  error
}

func newFileResource(file *os.File, path string, info os.FileInfo) *FileResource {
	return &FileResource{
		file: file,
		path: path,
		info: info,
	}
}

// Read reads up to len(p) bytes from the current marker position.
func (f *FileResource) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// Seek repositions the read marker.
func (f *FileResource) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// Close releases the file descriptor. Idempotent.
func (f *FileResource) Close() error {
	f.closeOnce.Do(func() {
		f.closeErr = f.file.Close()
	})
	return f.closeErr
}

func (f *FileResource) Path() string       { return f.path }
func (f *FileResource) Size() int64        { return f.info.Size() }
func (f *FileResource) ModTime() time.Time { return f.info.ModTime() }
