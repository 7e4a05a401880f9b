// Package slip10 generalizes BIP-0032 child-key derivation to secp256k1,
// NIST P-256 ("nist256p1") and ed25519, per SLIP-0010. It reuses
// bip32.ExtendedPrivateKey/Metadata as its key representation and adds the
// per-curve policy BIP-0032 itself doesn't need: a master-key and
// child-key retry loop for nist256p1, and a hardened-only derivation rule
// for ed25519 whose child scalar is the raw HMAC output rather than a
// modular sum.
package slip10

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"math/big"

	"github.com/shieldwallet/hdkeys/bip32"
	"github.com/shieldwallet/hdkeys/curve"
	"github.com/shieldwallet/hdkeys/xerr"
	"github.com/shieldwallet/hdkeys/xzero"
)

// maxRetries bounds the nist256p1 reseed loops. SLIP-0010 does not specify
// a limit. An attempt fails with probability about 1 in 2^32 (the P-256
// order n is about 2^256 - 2^224), so 256 is only a termination backstop,
// far more attempts than will ever be needed.
const maxRetries = 256

func hmacSeedKey(backend curve.Backend) []byte {
	switch backend.Name() {
	case "secp256k1":
		return []byte("Bitcoin seed")
	case "nist256p1":
		return []byte("Nist256p1 seed")
	case "ed25519":
		return []byte("ed25519 seed")
	default:
		panic("slip10: unknown curve backend " + backend.Name())
	}
}

// MasterKey derives the master extended private key for seed over backend.
// nist256p1 reseeds on an invalid I_L per SLIP-0010's master-key algorithm;
// secp256k1 and ed25519 never retry (ed25519 has no invalid scalar; an
// invalid secp256k1 master scalar is left as BIP-0032 leaves it, an error
// for the caller to react to by re-rolling entropy).
func MasterKey(seed []byte, backend curve.Backend) (*bip32.ExtendedPrivateKey, error) {
	salt := hmacSeedKey(backend)

	if backend.Name() != "nist256p1" {
		return bip32.NewMasterKeyWithSalt(seed, backend, salt)
	}

	data := seed
	for attempt := 0; attempt < maxRetries; attempt++ {
		mac := hmac.New(sha512.New, salt)
		mac.Write(data)
		i := mac.Sum(nil)

		il := new(big.Int).SetBytes(i[:32])
		if il.Sign() != 0 && il.Cmp(backend.Order()) < 0 {
			var chainCode [32]byte
			copy(chainCode[:], i[32:])
			xzero.Bytes(i)
			return bip32.NewExtendedPrivateKeyRaw(backend, il, chainCode, bip32.Metadata{})
		}
		data = i
	}
	return nil, xerr.New(xerr.InvalidDerivation, "nist256p1 master key reseed did not converge")
}

// DeriveChild derives the child at index from parent, applying the
// curve-specific policy SLIP-0010 layers over the shared HMAC-SHA512
// formula. ed25519 accepts only hardened indices; nist256p1 retries a
// failing HMAC output in place rather than asking the caller for a
// different index.
func DeriveChild(parent *bip32.ExtendedPrivateKey, index bip32.ChildNumber) (*bip32.ExtendedPrivateKey, error) {
	backend := parent.Backend()
	if backend.Name() == "ed25519" {
		return deriveEd25519Child(parent, index)
	}
	if backend.Name() == "nist256p1" {
		return deriveNist256p1Child(parent, index)
	}
	return parent.DeriveChild(index)
}

// DerivePath walks path component by component from parent using
// DeriveChild's curve-aware policy.
func DerivePath(parent *bip32.ExtendedPrivateKey, path bip32.DerivationPath) (*bip32.ExtendedPrivateKey, error) {
	cur := parent
	for _, idx := range path {
		next, err := DeriveChild(cur, idx)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// deriveEd25519Child implements SLIP-0010's ed25519 rule: hardened-only,
// data = 0x00 || k_par || ser32(i), and the child scalar is I_L itself
// (fed through crypto/ed25519's seed expansion when a public key is
// needed), never k_par + I_L mod l.
func deriveEd25519Child(parent *bip32.ExtendedPrivateKey, index bip32.ChildNumber) (*bip32.ExtendedPrivateKey, error) {
	if !index.IsHardened() {
		return nil, xerr.New(xerr.InvalidDerivation, "ed25519 derivation under SLIP-0010 is hardened-only").
			With("index", index.String())
	}
	backend := parent.Backend()
	parentScalar := parent.Scalar()
	defer xzero.BigInt(parentScalar)

	data := make([]byte, 0, 37)
	data = append(data, 0x00)
	data = append(data, backend.SerializePrivateKey(parentScalar)...)
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], uint32(index))
	data = append(data, idxBuf[:]...)

	chainCode := parent.ChainCode()
	mac := hmac.New(sha512.New, chainCode[:])
	mac.Write(data)
	i := mac.Sum(nil)
	defer xzero.Bytes(i)

	childScalar := new(big.Int).SetBytes(i[:32])
	var childChainCode [32]byte
	copy(childChainCode[:], i[32:])

	parentPub, err := pubKeyBytes(parent)
	if err != nil {
		return nil, err
	}
	meta := bip32.ChildMetadata(parent.Metadata(), parentPub, index)
	return bip32.NewExtendedPrivateKeyRaw(backend, childScalar, childChainCode, meta)
}

// deriveNist256p1Child implements SLIP-0010's nist256p1 reseed loop: on an
// invalid I_L the next attempt rehashes with Data = 0x01 || I_R ||
// ser32(i) instead of bumping the index, using the same chain-code key
// throughout.
func deriveNist256p1Child(parent *bip32.ExtendedPrivateKey, index bip32.ChildNumber) (*bip32.ExtendedPrivateKey, error) {
	backend := parent.Backend()
	parentScalar := parent.Scalar()
	defer xzero.BigInt(parentScalar)

	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], uint32(index))

	hardened := index.IsHardened()
	var baseData []byte
	if hardened {
		baseData = append([]byte{0x00}, backend.SerializePrivateKey(parentScalar)...)
	} else {
		pub, err := pubKeyBytes(parent)
		if err != nil {
			return nil, err
		}
		baseData = append([]byte{}, pub...)
	}
	data := append(append([]byte{}, baseData...), idxBuf[:]...)

	chainCode := parent.ChainCode()
	for attempt := 0; attempt < maxRetries; attempt++ {
		mac := hmac.New(sha512.New, chainCode[:])
		mac.Write(data)
		i := mac.Sum(nil)

		il := new(big.Int).SetBytes(i[:32])
		if il.Sign() != 0 && il.Cmp(backend.Order()) < 0 {
			childScalar, err := backend.TweakAddPrivate(parentScalar, il)
			if err == nil {
				var childChainCode [32]byte
				copy(childChainCode[:], i[32:])
				xzero.Bytes(i)

				parentPub, perr := pubKeyBytes(parent)
				if perr != nil {
					return nil, perr
				}
				meta := bip32.ChildMetadata(parent.Metadata(), parentPub, index)
				return bip32.NewExtendedPrivateKeyRaw(backend, childScalar, childChainCode, meta)
			}
		}
		// Reseed: Data = 0x01 || I_R || ser32(i).
		next := make([]byte, 0, 1+32+4)
		next = append(next, 0x01)
		next = append(next, i[32:]...)
		next = append(next, idxBuf[:]...)
		xzero.Bytes(i)
		data = next
	}
	return nil, xerr.New(xerr.InvalidDerivation, "nist256p1 child key reseed did not converge").
		With("index", index.String())
}

func pubKeyBytes(k *bip32.ExtendedPrivateKey) ([]byte, error) {
	pub, err := k.PublicKey()
	if err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidKeyData, "deriving parent public key")
	}
	return pub.PublicKeyBytes(), nil
}
