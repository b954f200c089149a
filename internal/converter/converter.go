// Package converter runs one file through decode, normalize and encode.
package converter

import (
	"fmt"
	"os"

	"github.com/greatbody/charset-convertor/internal/normalizer"
	"github.com/greatbody/charset-convertor/internal/transcoder"
)

// Options selects the encodings and the fold width of a conversion.
type Options struct {
	SourceEncoding string
	TargetEncoding string
	FoldWidth      int
}

// Job is a single file conversion.
type Job struct {
	Source      string
	Destination string
	Options
}

// Result describes a finished conversion.
type Result struct {
	BytesIn  int
	BytesOut int
	Chars    int
}

// ConvertBytes converts data in memory. Errors are *ConversionError without
// a path.
func ConvertBytes(data []byte, opts Options) ([]byte, error) {
	out, _, err := convert(data, opts)
	return out, wrap("", err)
}

// ConvertFile reads job.Source fully, converts it and writes
// job.Destination. Every error is a *ConversionError naming job.Source.
// The destination directory must exist.
func ConvertFile(job Job) (Result, error) {
	data, err := os.ReadFile(job.Source)
	if err != nil {
		return Result{}, wrap(job.Source, err)
	}
	out, chars, err := convert(data, job.Options)
	if err != nil {
		return Result{}, wrap(job.Source, err)
	}
	if err := os.WriteFile(job.Destination, out, 0o644); err != nil {
		return Result{}, wrap(job.Source, fmt.Errorf("write %s: %w", job.Destination, err))
	}
	return Result{BytesIn: len(data), BytesOut: len(out), Chars: chars}, nil
}

func convert(data []byte, opts Options) ([]byte, int, error) {
	// resolve both names before touching the data
	src, err := transcoder.Resolve(opts.SourceEncoding)
	if err != nil {
		return nil, 0, err
	}
	dst, err := transcoder.Resolve(opts.TargetEncoding)
	if err != nil {
		return nil, 0, err
	}

	runes, err := transcoder.DecodeWith(data, src, opts.SourceEncoding)
	if err != nil {
		return nil, 0, err
	}
	runes = normalizer.Normalize(runes, opts.FoldWidth)
	out, err := transcoder.EncodeWith(runes, dst, opts.TargetEncoding)
	if err != nil {
		return nil, 0, err
	}
	return out, len(runes), nil
}
