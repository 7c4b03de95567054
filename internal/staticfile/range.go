package staticfile

import (
	"strconv"
	"strings"
)

// ByteRange is a half-open interval [Lower, Upper) over file offsets.
type ByteRange struct {
	Lower int64
	Upper int64
}

// Len returns the number of bytes the range covers.
func (r ByteRange) Len() int64 { return r.Upper - r.Lower }

// parseRanges parses a Range header value of the form
// "bytes=<lower>-<upper>" with further sub-ranges separated by "/".
// The wire upper bound is inclusive and converted to an exclusive one;
// an omitted upper bound ("<lower>-") runs to the end of the file.
//
// A malformed sub-range is dropped rather than failing the whole
// header, so the caller sees only the sub-ranges that parsed. A header
// without the "bytes=" prefix parses to nothing.
func parseRanges(header string, size int64) []ByteRange {
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return nil
	}

	var ranges []ByteRange
	for _, part := range strings.Split(header[len(prefix):], "/") {
		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			continue
		}

		lower, err := strconv.ParseInt(bounds[0], 10, 64)
		if err != nil || lower < 0 {
			continue
		}

		upper := size
		if bounds[1] != "" {
			end, err := strconv.ParseInt(bounds[1], 10, 64)
			if err != nil || end < 0 {
				continue
			}
			upper = end + 1
		}

		ranges = append(ranges, ByteRange{Lower: lower, Upper: upper})
	}

	return ranges
}
