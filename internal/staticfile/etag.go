package staticfile

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"time"
)

// ETagFor computes the cache validator for the file at path with the
// given modification time: SHA-1 over path plus the decimal nanosecond
// timestamp, rendered as lowercase hex. The same (path, mtime) pair
// always yields the same tag, so a client-cached value still matches
// after an unchanged file, and any mtime change produces a new one.
func ETagFor(path string, modTime time.Time) string {
	sum := sha1.Sum([]byte(path + strconv.FormatInt(modTime.UnixNano(), 10)))
	return hex.EncodeToString(sum[:])
}
