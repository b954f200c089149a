// Package normalizer rewrites decoded text before it is encoded again:
// control characters become spaces, NEL becomes a line feed and long
// records can be folded at a fixed width.
package normalizer

const (
	lineFeed = 0x0A
	nel      = 0x15
	space    = 0x20
)

// Normalizer holds the per-job rewrite settings.
type Normalizer struct {
	// FoldWidth inserts a line feed before every FoldWidth-th input
	// character. Zero or negative disables folding.
	FoldWidth int
}

// Normalize is shorthand for Normalizer{FoldWidth: foldWidth}.Apply(in).
func Normalize(in []rune, foldWidth int) []rune {
	return Normalizer{FoldWidth: foldWidth}.Apply(in)
}

// Folding reports whether fixed-width folding is on.
func (n Normalizer) Folding() bool {
	return n.FoldWidth > 0
}

// Apply returns the rewritten sequence; in is not modified.
//
// Fold points are counted on input positions, so inserted line feeds do not
// shift later ones. NEL is only mapped to a line feed when folding is off.
func (n Normalizer) Apply(in []rune) []rune {
	folding := n.Folding()
	size := len(in)
	if folding && len(in) > 0 {
		size += (len(in) - 1) / n.FoldWidth
	}
	out := make([]rune, 0, size)

	for i, r := range in {
		if folding && i > 0 && i%n.FoldWidth == 0 {
			out = append(out, lineFeed)
		}
		switch {
		case !folding && r == nel:
			r = lineFeed
		case nonPrintable.has(r):
			r = space
		}
		out = append(out, r)
	}
	return out
}
