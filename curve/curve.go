// Package curve provides the uniform capability interface spec.md section
// 4.5 asks for over secp256k1, NIST P-256 (nist256p1) and ed25519: parse and
// serialize public/private keys in their canonical encodings, derive a
// public key from a private one, and (where the curve supports it) tweak-add
// a scalar into a key. bip32 and slip10 consume curves only through this
// interface so that swapping one backend for another never changes an
// observable output.
package curve

import (
	"errors"
	"math/big"
)

// ErrTweakUnsupported is returned by TweakAddPublic/TweakAddPrivate on
// curves that do not support public-key tweaking (ed25519 under SLIP-0010,
// which is hardened-only).
var ErrTweakUnsupported = errors.New("curve: tweak-add is not supported on this curve")

// Backend is the capability set spec.md section 4.5 names. Public keys are
// opaque serialized byte slices in each curve's canonical encoding (33-byte
// SEC1 compressed for secp256k1/nist256p1, the raw 32-byte point for
// ed25519; bip32 adds a 0x00 lead byte only inside a Payload); private keys
// are 32-byte scalars (ed25519: 32-byte seeds). The secp256k1 and
// nist256p1 backends check scalar range and point validity on parse; the
// ed25519 backend checks only lengths and the canonical y encoding.
type Backend interface {
	// Name identifies the backend, used by bip32.Version cross-checks and
	// by slip10 to select the HMAC master key and retry policy.
	Name() string

	// Order returns the curve's scalar order n.
	Order() *big.Int

	// ParsePrivateKey validates a 32-byte scalar is in (0, n). The
	// ed25519 backend accepts any 32-byte seed.
	ParsePrivateKey(b []byte) (*big.Int, error)

	// SerializePrivateKey encodes a scalar as 32 big-endian bytes.
	SerializePrivateKey(scalar *big.Int) []byte

	// PublicFromPrivate derives the canonical public key encoding for a
	// private scalar.
	PublicFromPrivate(scalar *big.Int) ([]byte, error)

	// ParsePublicKey validates a canonical public-key encoding and returns
	// it unchanged. secp256k1/nist256p1 check that it decompresses to a
	// point on the curve; ed25519 checks only the length and that the
	// encoded y is reduced mod 2^255-19, not that the point is on the curve.
	ParsePublicKey(b []byte) ([]byte, error)

	// TweakAddPublic computes tweak*G + pub. Returns ErrTweakUnsupported
	// on curves without public tweaking.
	TweakAddPublic(pub []byte, tweak *big.Int) ([]byte, error)

	// TweakAddPrivate computes (tweak + scalar) mod n. Returns
	// ErrTweakUnsupported on curves without private tweaking via
	// modular addition (ed25519, whose child scalar is the raw HMAC
	// output, not a sum — see slip10).
	TweakAddPrivate(scalar *big.Int, tweak *big.Int) (*big.Int, error)
}

// HardenedOnly reports whether a backend forbids non-hardened derivation,
// i.e. does not support public tweaking.
func HardenedOnly(b Backend) bool {
	_, err := b.TweakAddPublic(nil, big.NewInt(0))
	return errors.Is(err, ErrTweakUnsupported)
}

// Lookup resolves a Backend by its Name(), for callers (bip32's
// Payload-reconstructing constructors) that only have a curve name string
// on hand, e.g. from a decoded Version.CurveName().
func Lookup(name string) (Backend, bool) {
	switch name {
	case "secp256k1":
		return Secp256k1, true
	case "nist256p1":
		return NIST256p1, true
	case "ed25519":
		return Ed25519, true
	default:
		return nil, false
	}
}
