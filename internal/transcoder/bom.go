package transcoder

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	utf16BEBOM = []byte{0xFE, 0xFF}
	utf16LEBOM = []byte{0xFF, 0xFE}

	utf16BE = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
)

// HasBOM reports whether data starts with a UTF-8 byte order mark.
func HasBOM(data []byte) bool {
	return bytes.HasPrefix(data, utf8BOM)
}

// reencoder returns the encoder and the part of data that a decoded result
// must reproduce byte for byte. BOM-driven UTF-16 writes a big-endian BOM on
// encode whatever the input carried, so the input BOM is stripped and its
// endianness is used instead.
func reencoder(enc encoding.Encoding, data []byte) (*encoding.Encoder, []byte) {
	var fallback encoding.Encoding
	switch enc {
	case unicode.UTF16(unicode.BigEndian, unicode.UseBOM):
		fallback = utf16BE
	case unicode.UTF16(unicode.LittleEndian, unicode.UseBOM):
		fallback = utf16LE
	default:
		return enc.NewEncoder(), data
	}
	switch {
	case bytes.HasPrefix(data, utf16BEBOM):
		return utf16BE.NewEncoder(), data[len(utf16BEBOM):]
	case bytes.HasPrefix(data, utf16LEBOM):
		return utf16LE.NewEncoder(), data[len(utf16LEBOM):]
	}
	return fallback.NewEncoder(), data
}
