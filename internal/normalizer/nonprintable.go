package normalizer

// nonPrintable is the set of control and format code points replaced by a
// space. The table is fixed: C0 controls, SPACE, DEL, the C1 controls up to
// 0x9E and NO-BREAK SPACE. 0x9F is not a member and passes through. 0x15 is
// not a member either: it is owned by the NEL rule.
var nonPrintable = newCharSet(
	0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07,
	0x08, 0x09, 0x0A, 0x0B, 0x0C, 0x0D, 0x0E, 0x0F,
	0x10, 0x11, 0x12, 0x13, 0x14, 0x16, 0x17,
	0x18, 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E, 0x1F,
	0x20, 0x7F,
	0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87,
	0x88, 0x89, 0x8A, 0x8B, 0x8C, 0x8D, 0x8E, 0x8F,
	0x90, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97,
	0x98, 0x99, 0x9A, 0x9B, 0x9C, 0x9D, 0x9E,
	0xA0,
)

// charSet is a bitmap over the 256 code points a single-byte code page can
// produce. Anything above 0xFF is never a member.
type charSet [4]uint64

func newCharSet(members ...rune) *charSet {
	var s charSet
	for _, r := range members {
		s[r>>6] |= 1 << (uint(r) & 63)
	}
	return &s
}

func (s *charSet) has(r rune) bool {
	if r < 0 || r > 0xFF {
		return false
	}
	return s[r>>6]&(1<<(uint(r)&63)) != 0
}

func (s *charSet) members() []rune {
	var out []rune
	for r := rune(0); r <= 0xFF; r++ {
		if s.has(r) {
			out = append(out, r)
		}
	}
	return out
}

// IsNonPrintable reports whether r is replaced by a space.
func IsNonPrintable(r rune) bool {
	return nonPrintable.has(r)
}

// NonPrintable returns the members of the non-printable set in ascending order.
func NonPrintable() []rune {
	return nonPrintable.members()
}
