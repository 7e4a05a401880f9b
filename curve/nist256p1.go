package curve

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
)

// nist256p1Backend wraps stdlib crypto/elliptic's P-256, the curve
// SLIP-0010 calls "Nist256p1". No HD-derivation library in the example
// corpus ships its own P-256 arithmetic; the stdlib curve is the grounded
// choice (mirrors the P-256 multi-curve deriver in the corpus's disaster-
// recovery HD tooling).
type nist256p1Backend struct {
	curve elliptic.Curve
	a     *big.Int // -3 mod p, P-256's short-Weierstrass linear coefficient
}

// NIST256p1 is the SLIP-0010 "Nist256p1 seed" curve.
var NIST256p1 Backend = newNIST256p1()

func newNIST256p1() *nist256p1Backend {
	c := elliptic.P256()
	a := new(big.Int).Sub(c.Params().P, big.NewInt(3))
	return &nist256p1Backend{curve: c, a: a}
}

func (b *nist256p1Backend) Name() string { return "nist256p1" }

func (b *nist256p1Backend) Order() *big.Int {
	return b.curve.Params().N
}

func (b *nist256p1Backend) ParsePrivateKey(raw []byte) (*big.Int, error) {
	if len(raw) != 32 {
		return nil, fmt.Errorf("nist256p1: private key must be 32 bytes, got %d", len(raw))
	}
	scalar := new(big.Int).SetBytes(raw)
	if scalar.Sign() == 0 || scalar.Cmp(b.Order()) >= 0 {
		return nil, fmt.Errorf("nist256p1: private scalar out of range")
	}
	return scalar, nil
}

func (b *nist256p1Backend) SerializePrivateKey(scalar *big.Int) []byte {
	return scalarBytes(scalar, 32)
}

func (b *nist256p1Backend) PublicFromPrivate(scalar *big.Int) ([]byte, error) {
	x, y := b.curve.ScalarBaseMult(scalarBytes(scalar, 32))
	if x.Sign() == 0 && y.Sign() == 0 {
		return nil, fmt.Errorf("nist256p1: scalar produces the point at infinity")
	}
	return compressedPoint(b.curve, x, y), nil
}

func (b *nist256p1Backend) ParsePublicKey(raw []byte) ([]byte, error) {
	x, y, err := decompressPoint(b.curve, b.a, raw)
	if err != nil {
		return nil, fmt.Errorf("nist256p1: %w", err)
	}
	return compressedPoint(b.curve, x, y), nil
}

func (b *nist256p1Backend) TweakAddPublic(pub []byte, tweak *big.Int) ([]byte, error) {
	x, y, err := decompressPoint(b.curve, b.a, pub)
	if err != nil {
		return nil, fmt.Errorf("nist256p1: %w", err)
	}
	tx, ty := b.curve.ScalarBaseMult(scalarBytes(tweak, 32))
	rx, ry := b.curve.Add(x, y, tx, ty)
	if rx.Sign() == 0 && ry.Sign() == 0 {
		return nil, fmt.Errorf("nist256p1: tweak produces the point at infinity")
	}
	return compressedPoint(b.curve, rx, ry), nil
}

func (b *nist256p1Backend) TweakAddPrivate(scalar, tweak *big.Int) (*big.Int, error) {
	sum := new(big.Int).Add(scalar, tweak)
	sum.Mod(sum, b.Order())
	if sum.Sign() == 0 {
		return nil, fmt.Errorf("nist256p1: tweak produces a zero scalar")
	}
	return sum, nil
}
