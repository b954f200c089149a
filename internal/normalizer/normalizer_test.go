package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeScenario(t *testing.T) {
	in := []rune{0x00, 'A', 0x15, 'B'}

	assert.Equal(t, []rune{0x20, 'A', 0x0A, 'B'}, Normalize(in, 0))
	assert.Equal(t, []rune{0x20, 'A', 0x0A, 0x15, 'B'}, Normalize(in, 2))
	assert.Equal(t, []rune{0x00, 'A', 0x15, 'B'}, in, "input must not be modified")
}

func TestNonPrintableReplacedBySpace(t *testing.T) {
	for _, r := range NonPrintable() {
		assert.Equal(t, []rune{' '}, Normalize([]rune{r}, 0), "code point %#x", r)
		assert.Equal(t, []rune{' '}, Normalize([]rune{r}, 1), "code point %#x with folding", r)
	}
}

func TestNonPrintableMembership(t *testing.T) {
	members := NonPrintable()
	require.Len(t, members, 65)
	assert.Equal(t, rune(0x00), members[0])
	assert.Equal(t, rune(0xA0), members[len(members)-1])

	tests := []struct {
		r    rune
		want bool
	}{
		{0x00, true},
		{0x0A, true},
		{0x14, true},
		{0x15, false},
		{0x16, true},
		{0x20, true},
		{0x21, false},
		{'A', false},
		{0x7E, false},
		{0x7F, true},
		{0x85, true},
		{0x9F, false},
		{0xA0, true},
		{0xA1, false},
		{0x100, false},
		{0x2028, false},
		{-1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNonPrintable(tt.r), "code point %#x", tt.r)
	}
}

func TestNELRemapping(t *testing.T) {
	assert.Equal(t, []rune{0x0A}, Normalize([]rune{0x15}, 0))
	for _, w := range []int{1, 2, 80} {
		assert.Equal(t, []rune{0x15}, Normalize([]rune{0x15}, w), "fold width %d", w)
	}
}

func TestFoldInsertionPositions(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"", 3, ""},
		{"a", 1, "a"},
		{"ab", 1, "a\nb"},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc\nd"},
		{"abcdef", 3, "abc\ndef"},
		{"abcdefg", 3, "abc\ndef\ng"},
		{"abcdefg", 2, "ab\ncd\nef\ng"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := string(Normalize([]rune(tt.in), tt.width))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFoldCountsInputPositions(t *testing.T) {
	n := 25
	w := 4
	in := []rune(strings.Repeat("x", n))
	out := Normalize(in, w)

	breaks := 0
	consumed := 0
	for _, r := range out {
		if r == '\n' {
			breaks++
			assert.Zero(t, consumed%w)
			assert.NotZero(t, consumed)
			continue
		}
		consumed++
	}
	assert.Equal(t, (n-1)/w, breaks)
	assert.Equal(t, n, consumed)
	assert.Len(t, out, n+(n-1)/w)
}

func TestFoldWithExistingNewlines(t *testing.T) {
	// a newline in the input is itself non-printable and counts as a column
	got := Normalize([]rune("ab\ncd"), 2)
	assert.Equal(t, []rune{'a', 'b', '\n', ' ', 'c', '\n', 'd'}, got)
}

func TestPassThrough(t *testing.T) {
	in := []rune("Hello, World! äöü €")
	assert.Equal(t, in, Normalize(in, 0))
	assert.Equal(t, in, Normalize(in, -5))
	assert.False(t, Normalizer{}.Folding())
	assert.True(t, Normalizer{FoldWidth: 10}.Folding())
}
