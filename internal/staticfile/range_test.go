package staticfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Parse_Single_Bounded_Range(t *testing.T) {
	req := require.New(t)
	ranges := parseRanges("bytes=5-10", 500)
	req.Equal([]ByteRange{{Lower: 5, Upper: 11}}, ranges)
	req.Equal(int64(6), ranges[0].Len())
}

func Test_Parse_Open_Ended_Range_Runs_To_EOF(t *testing.T) {
	req := require.New(t)
	ranges := parseRanges("bytes=100-", 500)
	req.Equal([]ByteRange{{Lower: 100, Upper: 500}}, ranges)
	req.Equal(int64(400), ranges[0].Len())
}

func Test_Parse_Multiple_Ranges(t *testing.T) {
	req := require.New(t)
	ranges := parseRanges("bytes=0-3/10-15", 500)
	req.Equal([]ByteRange{{Lower: 0, Upper: 4}, {Lower: 10, Upper: 16}}, ranges)
}

func Test_Parse_Drops_Malformed_Sub_Range(t *testing.T) {
	req := require.New(t)

	// A malformed sub-range among valid ones is dropped, not fatal
	ranges := parseRanges("bytes=abc/5-10", 500)
	req.Equal([]ByteRange{{Lower: 5, Upper: 11}}, ranges)
}

func Test_Parse_Rejects_Garbage(t *testing.T) {
	req := require.New(t)

	cases := []string{
		"",              // no header
		"items=0-5",     // wrong unit
		"bytes=",        // nothing to parse
		"bytes=5",       // no dash
		"bytes=-",       // no bounds
		"bytes=-5-10",   // negative lower splits wrong
		"bytes=5-x",     // non-numeric upper
		"bytes=one-two", // non-numeric everything
	}
	for _, header := range cases {
		req.Empty(parseRanges(header, 500), "header %q", header)
	}
}
