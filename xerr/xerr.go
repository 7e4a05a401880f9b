// Package xerr defines the flat error taxonomy shared by bip39, curve,
// bip32 and slip10. Every error the library returns carries a Kind so
// callers can switch on failure category without string matching.
package xerr

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind categorizes a failure. See the table in spec.md section 7.
type Kind int

const (
	// BadWordCount is raised when a phrase has a word count outside
	// {12,15,18,21,24}.
	BadWordCount Kind = iota
	// BadEntropyBitCount is raised when entropy bit length is outside
	// {128,160,192,224,256}.
	BadEntropyBitCount
	// UnknownWord is raised when a phrase word is absent from the chosen
	// language's wordlist.
	UnknownWord
	// InvalidChecksum is raised when the recomputed checksum bits of a
	// decoded phrase do not match the supplied ones.
	InvalidChecksum
	// InvalidPath is raised on derivation-path syntax or range errors.
	InvalidPath
	// InvalidPayload is raised on Base58Check and length errors in the
	// extended-key payload codec. The codec does not check root-key
	// invariants (depth 0 with a nonzero parent fingerprint or child
	// number).
	InvalidPayload
	// InvalidVersion is raised when an encoder/decoder polarity does not
	// match the declared key kind.
	InvalidVersion
	// InvalidKeyData is raised when a key prefix, scalar, or point is
	// malformed.
	InvalidKeyData
	// InvalidDerivation is raised when a derived key is invalid (identity
	// point, zero/out-of-range scalar) or a hardened child was requested
	// from a public-only key.
	InvalidDerivation
)

func (k Kind) String() string {
	switch k {
	case BadWordCount:
		return "bad_word_count"
	case BadEntropyBitCount:
		return "bad_entropy_bit_count"
	case UnknownWord:
		return "unknown_word"
	case InvalidChecksum:
		return "invalid_checksum"
	case InvalidPath:
		return "invalid_path"
	case InvalidPayload:
		return "invalid_payload"
	case InvalidVersion:
		return "invalid_version"
	case InvalidKeyData:
		return "invalid_key_data"
	case InvalidDerivation:
		return "invalid_derivation"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by every exported operation in
// this module. It carries a Kind, a human message, optional key/value
// context (e.g. child index, hardened flag, version bytes) and an optional
// wrapped backend error whose original message is preserved verbatim.
type Error struct {
	Kind    Kind
	Msg     string
	Context map[string]string
	Cause   error
}

// New builds an Error with no wrapped cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap builds an Error that preserves cause's message, following the
// teacher's convention (github.com/pkg/errors) of never discarding the
// original error text when adding context.
func Wrap(cause error, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: errors.WithStack(cause)}
}

// With attaches key/value context and returns the receiver for chaining.
func (e *Error) With(key, value string) *Error {
	if e.Context == nil {
		e.Context = make(map[string]string, 2)
	}
	e.Context[key] = value
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if len(e.Context) > 0 {
		b.WriteString(" (")
		first := true
		for k, v := range e.Context {
			if !first {
				b.WriteString(", ")
			}
			first = false
			fmt.Fprintf(&b, "%s=%s", k, v)
		}
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap exposes the wrapped cause so errors.Is/errors.As keep working
// across this boundary.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write `errors.Is(err, xerr.New(xerr.InvalidPath, ""))`-style checks, or
// more commonly `errors.As` to pull the Kind out directly.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}
