package converter

import (
	"errors"
	"fmt"

	"github.com/greatbody/charset-convertor/internal/transcoder"
)

// Kind classifies why a conversion failed.
type Kind int

const (
	KindIO Kind = iota
	KindEncoding
	KindDecode
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindEncoding:
		return "encoding"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "io"
	}
}

// ConversionError carries the file a conversion failed for. Path is empty
// for in-memory conversions.
type ConversionError struct {
	Path string
	Kind Kind
	Err  error
}

func (e *ConversionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("convert: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("convert %s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, falling back to KindIO for anything that is
// not a ConversionError.
func KindOf(err error) Kind {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return classify(err)
}

func classify(err error) Kind {
	var (
		decErr *transcoder.DecodeError
		encErr *transcoder.EncodeError
	)
	switch {
	case errors.Is(err, transcoder.ErrUnknownEncoding):
		return KindEncoding
	case errors.As(err, &decErr):
		return KindDecode
	case errors.As(err, &encErr):
		return KindEncode
	default:
		return KindIO
	}
}

func wrap(path string, err error) error {
	if err == nil {
		return nil
	}
	return &ConversionError{Path: path, Kind: classify(err), Err: err}
}
