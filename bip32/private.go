package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/shieldwallet/hdkeys/curve"
	"github.com/shieldwallet/hdkeys/xerr"
	"github.com/shieldwallet/hdkeys/xzero"
)

// bitcoinSeedSalt is BIP-0032's fixed HMAC key for deriving a master key
// from a seed. slip10 derives master keys for other curves with their own
// salts via NewMasterKeyWithSalt.
var bitcoinSeedSalt = []byte("Bitcoin seed")

// ExtendedPrivateKey is a private key plus chain code and metadata, generic
// over the curve.Backend that interprets the scalar. bip32's own
// NewMasterKey fixes the backend to curve.Secp256k1, and DeriveChild keeps
// the parent's backend; slip10
// reuses this same type with curve.NIST256p1 and curve.Ed25519 and its own
// derivation policy layered on top (retry loop, hardened-only rule).
type ExtendedPrivateKey struct {
	backend   curve.Backend
	scalar    *big.Int
	chainCode [32]byte
	meta      Metadata
	pubCache  []byte
}

// NewMasterKey derives the BIP-0032 master extended private key from a
// BIP-0039 seed, over secp256k1.
func NewMasterKey(seed []byte) (*ExtendedPrivateKey, error) {
	return NewMasterKeyWithSalt(seed, curve.Secp256k1, bitcoinSeedSalt)
}

// NewMasterKeyWithSalt derives a master key from seed using an arbitrary
// HMAC key and curve backend, the generalization SLIP-0010 needs: "Bitcoin
// seed" for secp256k1, "Nist256p1 seed" for nist256p1, "ed25519 seed" for
// ed25519.
func NewMasterKeyWithSalt(seed []byte, backend curve.Backend, salt []byte) (*ExtendedPrivateKey, error) {
	if len(seed) < 16 || len(seed) > 64 {
		return nil, xerr.New(xerr.InvalidKeyData, fmt.Sprintf("seed length %d out of [16,64] range", len(seed)))
	}
	mac := hmac.New(sha512.New, salt)
	mac.Write(seed)
	i := mac.Sum(nil)
	defer xzero.Bytes(i)

	il, ir := i[:32], i[32:]
	scalar, err := backend.ParsePrivateKey(il)
	if err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidDerivation, "master key scalar out of range")
	}

	var chainCode [32]byte
	copy(chainCode[:], ir)
	return &ExtendedPrivateKey{backend: backend, scalar: scalar, chainCode: chainCode}, nil
}

// NewExtendedPrivateKeyRaw builds an ExtendedPrivateKey from already-derived
// material. Exported for slip10's ed25519 path, whose child scalar is the
// raw HMAC output rather than a TweakAddPrivate sum bip32's own DeriveChild
// would compute.
func NewExtendedPrivateKeyRaw(backend curve.Backend, scalar *big.Int, chainCode [32]byte, meta Metadata) (*ExtendedPrivateKey, error) {
	if _, err := backend.ParsePrivateKey(backend.SerializePrivateKey(scalar)); err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidDerivation, "child scalar out of range")
	}
	return &ExtendedPrivateKey{backend: backend, scalar: scalar, chainCode: chainCode, meta: meta}, nil
}

// ExtendedPrivateKeyFromPayload reconstructs a live, derivation-capable
// ExtendedPrivateKey from a parsed Payload, the counterpart to Payload that
// lets a caller import an xprv-style string and keep deriving from it.
// backend must match payload.Version's registered curve, if any; an
// unregistered/opaque version skips that cross-check and trusts the
// caller's backend outright.
func ExtendedPrivateKeyFromPayload(payload Payload, backend curve.Backend) (*ExtendedPrivateKey, error) {
	if payload.Version.Polarity() != Private {
		return nil, xerr.New(xerr.InvalidVersion, "payload version is not a private-key version").
			With("version", payload.Version.String())
	}
	if name := payload.Version.CurveName(); name != "" && name != backend.Name() {
		return nil, xerr.New(xerr.InvalidVersion, "payload version curve does not match backend").
			With("version", payload.Version.String()).With("backend", backend.Name())
	}
	if payload.KeyData[0] != 0x00 {
		return nil, xerr.New(xerr.InvalidKeyData, "private key data must be prefixed with 0x00")
	}
	scalar, err := backend.ParsePrivateKey(payload.KeyData[1:])
	if err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidKeyData, "parsing private scalar from payload")
	}
	return &ExtendedPrivateKey{
		backend:   backend,
		scalar:    scalar,
		chainCode: payload.ChainCode,
		meta: Metadata{
			Depth:             payload.Depth,
			ParentFingerprint: payload.ParentFingerprint,
			ChildNumber:       payload.ChildNumber,
		},
	}, nil
}

// Backend returns the curve this key is defined over.
func (k *ExtendedPrivateKey) Backend() curve.Backend { return k.backend }

// Metadata returns the key's depth/fingerprint/child-number bookkeeping.
func (k *ExtendedPrivateKey) Metadata() Metadata { return k.meta }

// ChainCode returns a copy of the 32-byte chain code.
func (k *ExtendedPrivateKey) ChainCode() [32]byte { return k.chainCode }

// Scalar returns the raw private scalar. Callers that retain it take on
// the zeroization contract themselves.
func (k *ExtendedPrivateKey) Scalar() *big.Int {
	return new(big.Int).Set(k.scalar)
}

func (k *ExtendedPrivateKey) publicKeyBytes() ([]byte, error) {
	if k.pubCache != nil {
		return k.pubCache, nil
	}
	pub, err := k.backend.PublicFromPrivate(k.scalar)
	if err != nil {
		return nil, err
	}
	k.pubCache = pub
	return pub, nil
}

// PublicKey derives the neutered ExtendedPublicKey counterpart, carrying
// the same chain code and metadata.
func (k *ExtendedPrivateKey) PublicKey() (*ExtendedPublicKey, error) {
	pub, err := k.publicKeyBytes()
	if err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidKeyData, "deriving public key")
	}
	out := make([]byte, len(pub))
	copy(out, pub)
	return &ExtendedPublicKey{backend: k.backend, pub: out, chainCode: k.chainCode, meta: k.meta}, nil
}

// DeriveChild derives the child at index. Hardened indices hash
// 0x00 || k_par || ser32(i); normal indices hash ser_P(K_par) || ser32(i).
// Both branches compute the child scalar with the backend's
// TweakAddPrivate, so on ed25519 (whose TweakAddPrivate returns
// ErrTweakUnsupported) DeriveChild always fails; slip10 derives ed25519
// children with its own rule and never calls this for them.
func (k *ExtendedPrivateKey) DeriveChild(index ChildNumber) (*ExtendedPrivateKey, error) {
	data := make([]byte, 0, 37)
	if index.IsHardened() {
		data = append(data, 0x00)
		data = append(data, k.backend.SerializePrivateKey(k.scalar)...)
	} else {
		pub, err := k.publicKeyBytes()
		if err != nil {
			return nil, xerr.Wrap(err, xerr.InvalidDerivation, "deriving parent public key for non-hardened child")
		}
		data = append(data, pub...)
	}
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], uint32(index))
	data = append(data, idxBuf[:]...)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	i := mac.Sum(nil)
	defer xzero.Bytes(i)

	il := new(big.Int).SetBytes(i[:32])
	if il.Cmp(k.backend.Order()) >= 0 {
		return nil, xerr.New(xerr.InvalidDerivation, "I_L out of range; caller should try the next index")
	}
	childScalar, err := k.backend.TweakAddPrivate(k.scalar, il)
	if err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidDerivation, "child scalar invalid; caller should try the next index")
	}

	parentPub, err := k.publicKeyBytes()
	if err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidKeyData, "deriving parent public key for fingerprint")
	}

	var chainCode [32]byte
	copy(chainCode[:], i[32:])
	return &ExtendedPrivateKey{
		backend:   k.backend,
		scalar:    childScalar,
		chainCode: chainCode,
		meta:      childMetadata(k.meta, parentPub, index),
	}, nil
}

// DerivePath walks path component by component from k.
func (k *ExtendedPrivateKey) DerivePath(path DerivationPath) (*ExtendedPrivateKey, error) {
	cur := k
	for _, idx := range path {
		next, err := cur.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Payload encodes k into its 78-byte wire payload under version.
func (k *ExtendedPrivateKey) Payload(version Version) (Payload, error) {
	if version.Polarity() != Private {
		return Payload{}, xerr.New(xerr.InvalidVersion, "version is not a private-key version").With("version", version.String())
	}
	var keyData [33]byte
	copy(keyData[1:], k.backend.SerializePrivateKey(k.scalar))
	return Payload{
		Version:           version,
		Depth:             k.meta.Depth,
		ParentFingerprint: k.meta.ParentFingerprint,
		ChildNumber:       k.meta.ChildNumber,
		ChainCode:         k.chainCode,
		KeyData:           keyData,
	}, nil
}

// Zero clears the private scalar, chain code and metadata in place.
// Callers that need the key after calling Zero must have already
// extracted what they need.
func (k *ExtendedPrivateKey) Zero() {
	xzero.BigInt(k.scalar)
	xzero.Bytes(k.chainCode[:])
	k.meta.Zero()
	if k.pubCache != nil {
		xzero.Bytes(k.pubCache)
	}
}
