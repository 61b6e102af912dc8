package dta

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segmentTexts(t *testing.T, content string) []string {
	t.Helper()
	ranges, err := SegmentBlankLines(strings.NewReader(content))
	require.NoError(t, err)
	texts := make([]string, len(ranges))
	for i, r := range ranges {
		require.NotZero(t, r.Size, "range %d is empty", i)
		texts[i] = content[r.Start:r.End()]
	}
	return texts
}

func TestSegmentBlankLines(t *testing.T) {
	tt := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "empty source",
			content:  "",
			expected: []string{},
		},
		{
			name:     "only blank lines",
			content:  "\n\n  \n\t\n",
			expected: []string{},
		},
		{
			name:     "single spectrum without trailing newline",
			content:  "1025.5 2\n100.1 30",
			expected: []string{"1025.5 2\n100.1 30"},
		},
		{
			name:     "single spectrum with trailing blank line",
			content:  "1025.5 2\n100.1 30\n\n",
			expected: []string{"1025.5 2\n100.1 30\n"},
		},
		{
			name:     "one and two blank lines between spectra",
			content:  "A\n1\n\nB\n2\n\n\nC\n3\n",
			expected: []string{"A\n1\n", "B\n2\n", "C\n3\n"},
		},
		{
			name:     "leading blank lines",
			content:  "\n\n\nA\n1\n",
			expected: []string{"A\n1\n"},
		},
		{
			name:     "whitespace-only separator",
			content:  "A\n1\n \nB\n2\n\t \nC\n",
			expected: []string{"A\n1\n", "B\n2\n", "C\n"},
		},
		{
			name:     "crlf line endings",
			content:  "A\r\n1\r\n\r\nB\r\n2\r\n",
			expected: []string{"A\r\n1\r\n", "B\r\n2\r\n"},
		},
		{
			name:     "trailing whitespace without newline",
			content:  "A\n1\n\n   ",
			expected: []string{"A\n1\n"},
		},
		{
			name:     "content on first line is not dropped",
			content:  "A\n\nB",
			expected: []string{"A\n", "B"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, segmentTexts(t, tc.content))
		})
	}
}

func TestSegmentBlankLinesLongLine(t *testing.T) {
	long := strings.Repeat("9", scanBufferSize*2+17)
	content := "A\n" + long + "\n\n" + strings.Repeat(" ", scanBufferSize+3) + "\nB\n"

	assert.Equal(t, []string{"A\n" + long + "\n", "B\n"}, segmentTexts(t, content))
}

func TestSegmentBlankLinesContiguousOrdinals(t *testing.T) {
	var b strings.Builder
	for i := range 50 {
		b.WriteString("500.0 1\n")
		b.WriteString(strings.Repeat("\n", i%3+1))
	}
	ranges, err := SegmentBlankLines(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, ranges, 50)
	for i := 1; i < len(ranges); i++ {
		assert.Greater(t, ranges[i].Start, ranges[i-1].End(), "range %d overlaps its predecessor", i)
	}
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestSegmentBlankLinesReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := SegmentBlankLines(failingReader{err: boom})
	require.ErrorIs(t, err, boom)
}
