// Package xzero holds the zeroization helpers used by every type in this
// module that owns secret material (chain codes, private scalars, seeds,
// intermediate HMAC output). Clearing on drop is part of the contract for
// those types, not an optimization.
package xzero

import (
	"math/big"
	"runtime"
)

// Bytes overwrites b with zeros in place. runtime.KeepAlive pins b past the
// last real use so the compiler cannot prove the clear is dead and elide it.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// BigInt clears the words backing z so a stale copy of a scalar does not
// linger in the big.Int's internal slice after the value is no longer
// needed. SetInt64(0) alone only re-slices the internal nat to length
// zero; it does not overwrite the backing array, so the old words stay
// live in memory past the new length until reused. Bits() returns that
// backing slice by reference, so zeroing through it before truncating
// actually scrubs the memory.
func BigInt(z *big.Int) {
	if z == nil {
		return
	}
	words := z.Bits()
	for i := range words {
		words[i] = 0
	}
	runtime.KeepAlive(words)
	z.SetInt64(0)
}
