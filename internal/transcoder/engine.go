package transcoder

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	// ErrInvalidInput marks bytes that are not valid in the source encoding.
	ErrInvalidInput = errors.New("invalid byte sequence")
	// ErrUnrepresentable marks a character the target encoding cannot hold.
	ErrUnrepresentable = errors.New("character not representable")
)

// DecodeError reports input bytes that could not be decoded.
// Offset is -1 when the decoder cannot tell where the problem is.
type DecodeError struct {
	Encoding string
	Offset   int
	Err      error
}

func (e *DecodeError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("decode %s: %v", e.Encoding, e.Err)
	}
	return fmt.Sprintf("decode %s: %v at byte %d", e.Encoding, e.Err, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a character that could not be encoded.
type EncodeError struct {
	Encoding string
	Index    int
	Rune     rune
	Err      error
}

func (e *EncodeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("encode %s: %v", e.Encoding, e.Err)
	}
	return fmt.Sprintf("encode %s: %v: %U at character %d", e.Encoding, e.Err, e.Rune, e.Index)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Decode converts data from the named encoding into code points.
// Nothing is substituted: bytes without a mapping fail the call.
func Decode(data []byte, name string) ([]rune, error) {
	enc, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	return DecodeWith(data, enc, name)
}

// Encode converts code points into bytes of the named encoding.
func Encode(runes []rune, name string) ([]byte, error) {
	enc, err := Resolve(name)
	if err != nil {
		return nil, err
	}
	return EncodeWith(runes, enc, name)
}

// DecodeWith decodes data with an already resolved encoding. label only
// appears in errors.
func DecodeWith(data []byte, enc encoding.Encoding, label string) ([]rune, error) {
	if cm, ok := enc.(*charmap.Charmap); ok {
		return decodeSingleByte(data, cm, label)
	}
	if enc == unicode.UTF8 {
		return decodeUTF8(data, label)
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, &DecodeError{Encoding: label, Offset: -1, Err: fmt.Errorf("%w: %v", ErrInvalidInput, err)}
	}
	if bytes.ContainsRune(out, utf8.RuneError) {
		// U+FFFD is either real content or the decoder's substitute; only
		// real content survives the trip back.
		e, want := reencoder(enc, data)
		back, err := e.Bytes(out)
		if err != nil || !bytes.Equal(back, want) {
			return nil, &DecodeError{Encoding: label, Offset: -1, Err: ErrInvalidInput}
		}
	}
	return bytes.Runes(out), nil
}

// EncodeWith encodes runes with an already resolved encoding.
func EncodeWith(runes []rune, enc encoding.Encoding, label string) ([]byte, error) {
	if cm, ok := enc.(*charmap.Charmap); ok {
		return encodeSingleByte(runes, cm, label)
	}
	if enc == unicode.UTF8 {
		return encodeUTF8(runes, label)
	}

	for i, r := range runes {
		if !utf8.ValidRune(r) {
			return nil, &EncodeError{Encoding: label, Index: i, Rune: r, Err: ErrUnrepresentable}
		}
	}
	out, err := enc.NewEncoder().Bytes([]byte(string(runes)))
	if err != nil {
		return nil, &EncodeError{Encoding: label, Index: -1, Err: fmt.Errorf("%w: %v", ErrUnrepresentable, err)}
	}
	return out, nil
}

func decodeSingleByte(data []byte, cm *charmap.Charmap, label string) ([]rune, error) {
	out := make([]rune, len(data))
	for i, b := range data {
		r := cm.DecodeByte(b)
		if r == utf8.RuneError {
			return nil, &DecodeError{Encoding: label, Offset: i, Err: ErrInvalidInput}
		}
		out[i] = r
	}
	return out, nil
}

func encodeSingleByte(runes []rune, cm *charmap.Charmap, label string) ([]byte, error) {
	out := make([]byte, len(runes))
	for i, r := range runes {
		b, ok := cm.EncodeRune(r)
		if !ok {
			return nil, &EncodeError{Encoding: label, Index: i, Rune: r, Err: ErrUnrepresentable}
		}
		out[i] = b
	}
	return out, nil
}

func decodeUTF8(data []byte, label string) ([]rune, error) {
	start := 0
	if HasBOM(data) {
		start = len(utf8BOM)
	}
	out := make([]rune, 0, utf8.RuneCount(data[start:]))
	for i := start; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, &DecodeError{Encoding: label, Offset: i, Err: ErrInvalidInput}
		}
		out = append(out, r)
		i += size
	}
	return out, nil
}

func encodeUTF8(runes []rune, label string) ([]byte, error) {
	out := make([]byte, 0, len(runes))
	for i, r := range runes {
		if !utf8.ValidRune(r) {
			return nil, &EncodeError{Encoding: label, Index: i, Rune: r, Err: ErrUnrepresentable}
		}
		out = utf8.AppendRune(out, r)
	}
	return out, nil
}
