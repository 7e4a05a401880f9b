package curve

import (
	"crypto/elliptic"
	"fmt"
	"math/big"
)

// compressedPoint serializes an elliptic.Curve point in SEC1 compressed
// form: a 0x02/0x03 parity byte followed by the big-endian X coordinate,
// padded to the curve's field-element width. Shared by the secp256k1 and
// nist256p1 backends, which differ only in which elliptic.Curve they wrap.
func compressedPoint(c elliptic.Curve, x, y *big.Int) []byte {
	byteLen := (c.Params().BitSize + 7) / 8
	out := make([]byte, 1+byteLen)
	if y.Bit(0) == 0 {
		out[0] = 0x02
	} else {
		out[0] = 0x03
	}
	xb := x.Bytes()
	copy(out[1+byteLen-len(xb):], xb)
	return out
}

// decompressPoint recovers (x, y) from a SEC1 compressed point, validating
// the parity byte, the field range of x, and that the recovered point lies
// on the curve. a is the curve's short-Weierstrass linear coefficient
// (0 for secp256k1, -3 mod p for nist256p1) — stdlib elliptic.CurveParams
// does not expose it, so each backend supplies its own. Uses
// big.Int.ModSqrt, which implements Tonelli-Shanks and needs no
// curve-specific fast path even though both curves happen to have p = 3
// (mod 4).
func decompressPoint(c elliptic.Curve, a *big.Int, data []byte) (*big.Int, *big.Int, error) {
	byteLen := (c.Params().BitSize + 7) / 8
	if len(data) != 1+byteLen {
		return nil, nil, fmt.Errorf("curve: compressed point must be %d bytes, got %d", 1+byteLen, len(data))
	}
	prefix := data[0]
	if prefix != 0x02 && prefix != 0x03 {
		return nil, nil, fmt.Errorf("curve: compressed point prefix 0x%02x is not 0x02/0x03", prefix)
	}

	p := c.Params().P
	x := new(big.Int).SetBytes(data[1:])
	if x.Sign() < 0 || x.Cmp(p) >= 0 {
		return nil, nil, fmt.Errorf("curve: x coordinate out of field range")
	}

	// y^2 = x^3 + a*x + b (mod p).
	ySq := new(big.Int).Mul(x, x)
	ySq.Mul(ySq, x)
	ySq.Add(ySq, new(big.Int).Mul(a, x))
	ySq.Add(ySq, c.Params().B)
	ySq.Mod(ySq, p)

	y := new(big.Int).ModSqrt(ySq, p)
	if y == nil {
		return nil, nil, fmt.Errorf("curve: x coordinate is not on the curve")
	}
	wantOdd := prefix == 0x03
	if (y.Bit(0) == 1) != wantOdd {
		y.Sub(p, y)
	}
	if !c.IsOnCurve(x, y) {
		return nil, nil, fmt.Errorf("curve: decompressed point is not on the curve")
	}
	return x, y, nil
}

// scalarBytes encodes a scalar as big-endian bytes padded to size n.
func scalarBytes(scalar *big.Int, n int) []byte {
	out := make([]byte, n)
	b := scalar.Bytes()
	if len(b) > n {
		b = b[len(b)-n:]
	}
	copy(out[n-len(b):], b)
	return out
}
