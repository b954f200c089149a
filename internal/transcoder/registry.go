package transcoder

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnknownEncoding is returned when a name does not resolve to an encoding.
var ErrUnknownEncoding = errors.New("unknown encoding")

// HostDefault is the encoding used for the "default" and "host" names.
var HostDefault encoding.Encoding = unicode.UTF8

// builtin holds the names the tool documents. Keys are normalized with key().
var builtin = map[string]encoding.Encoding{
	"cp1047":   charmap.CodePage1047,
	"ibm1047":  charmap.CodePage1047,
	"ebcdic":   charmap.CodePage1047,
	"cp037":    charmap.CodePage037,
	"ibm037":   charmap.CodePage037,
	"cp1140":   charmap.CodePage1140,
	"ibm01140": charmap.CodePage1140,
	"utf8":     unicode.UTF8,
	"default":  HostDefault,
	"host":     HostDefault,
	"utf16":    unicode.UTF16(unicode.BigEndian, unicode.UseBOM),
	"utf16le":  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf16be":  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
}

// Registry resolves encoding names and memoizes the outcome.
// It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	cache map[string]resolved
}

type resolved struct {
	enc encoding.Encoding
	err error
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{cache: make(map[string]resolved)}
}

var defaultRegistry = NewRegistry()

// Resolve looks name up in the process-wide registry.
func Resolve(name string) (encoding.Encoding, error) {
	return defaultRegistry.Resolve(name)
}

// Resolve returns the encoding for name. Failures are cached as well, so a
// name resolves the same way for the whole lifetime of the Registry.
func (r *Registry) Resolve(name string) (encoding.Encoding, error) {
	k := key(name)
	r.mu.RLock()
	res, ok := r.cache[k]
	r.mu.RUnlock()
	if ok {
		return res.enc, res.err
	}

	enc, err := lookup(name)
	r.mu.Lock()
	r.cache[k] = resolved{enc: enc, err: err}
	r.mu.Unlock()
	return enc, err
}

func lookup(name string) (encoding.Encoding, error) {
	k := key(name)
	if k == "" {
		return nil, fmt.Errorf("%w: empty name", ErrUnknownEncoding)
	}
	if enc, ok := builtin[k]; ok {
		return enc, nil
	}
	for _, e := range charmap.All {
		if cm, ok := e.(*charmap.Charmap); ok && key(cm.String()) == k {
			return cm, nil
		}
	}
	trimmed := strings.TrimSpace(name)
	if enc, err := ianaindex.IANA.Encoding(trimmed); err == nil && enc != nil {
		return enc, nil
	}
	if enc, err := htmlindex.Get(trimmed); err == nil {
		return enc, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// Names lists the built-in encoding names in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for k := range builtin {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// key folds case and drops the separators people put into charset names,
// so "IBM-1047", "ibm_1047" and "Ibm1047" are the same.
func key(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, name)
}
