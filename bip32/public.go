package bip32

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"math/big"
	"strconv"

	"github.com/shieldwallet/hdkeys/curve"
	"github.com/shieldwallet/hdkeys/xerr"
	"github.com/shieldwallet/hdkeys/xzero"
)

// ExtendedPublicKey is the neutered counterpart of ExtendedPrivateKey: a
// public key, chain code and metadata, capable only of non-hardened
// derivation (BIP-0032 section "Public parent key -> public child key").
type ExtendedPublicKey struct {
	backend   curve.Backend
	pub       []byte
	chainCode [32]byte
	meta      Metadata
}

// Backend returns the curve this key is defined over.
func (k *ExtendedPublicKey) Backend() curve.Backend { return k.backend }

// Metadata returns the key's depth/fingerprint/child-number bookkeeping.
func (k *ExtendedPublicKey) Metadata() Metadata { return k.meta }

// ChainCode returns a copy of the 32-byte chain code.
func (k *ExtendedPublicKey) ChainCode() [32]byte { return k.chainCode }

// PublicKeyBytes returns the canonical serialized public key.
func (k *ExtendedPublicKey) PublicKeyBytes() []byte {
	out := make([]byte, len(k.pub))
	copy(out, k.pub)
	return out
}

// DeriveChild derives the non-hardened child at index. A hardened index is
// always rejected: deriving a hardened child requires the parent private
// key, which a neutered key does not have (spec.md's "neuter-agreement"
// invariant: this must fail exactly where ExtendedPrivateKey.DeriveChild
// would take the private-parent branch).
func (k *ExtendedPublicKey) DeriveChild(index ChildNumber) (*ExtendedPublicKey, error) {
	if index.IsHardened() {
		return nil, xerr.New(xerr.InvalidDerivation, "cannot derive a hardened child from a public key").
			With("index", index.String())
	}

	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], uint32(index))
	data := make([]byte, 0, len(k.pub)+4)
	data = append(data, k.pub...)
	data = append(data, idxBuf[:]...)

	mac := hmac.New(sha512.New, k.chainCode[:])
	mac.Write(data)
	i := mac.Sum(nil)
	defer xzero.Bytes(i)

	il := new(big.Int).SetBytes(i[:32])
	if il.Cmp(k.backend.Order()) >= 0 {
		return nil, xerr.New(xerr.InvalidDerivation, "I_L out of range; caller should try the next index")
	}
	childPub, err := k.backend.TweakAddPublic(k.pub, il)
	if err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidDerivation, "child public point invalid; caller should try the next index")
	}

	var chainCode [32]byte
	copy(chainCode[:], i[32:])
	return &ExtendedPublicKey{
		backend:   k.backend,
		pub:       childPub,
		chainCode: chainCode,
		meta:      childMetadata(k.meta, k.pub, index),
	}, nil
}

// DerivePath walks path component by component from k. Any hardened
// component makes the whole path fail.
func (k *ExtendedPublicKey) DerivePath(path DerivationPath) (*ExtendedPublicKey, error) {
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

// Payload encodes k into its 78-byte wire payload under version. A 33-byte
// compressed point (secp256k1/nist256p1) fills KeyData directly; a 32-byte
// ed25519 point is right-aligned behind a 0x00 lead byte, the same
// convention ExtendedPrivateKey.Payload uses for its 32-byte scalar.
// ExtendedPublicKeyFromPayload picks the layout by the backend's name, not
// by KeyData[0].
func (k *ExtendedPublicKey) Payload(version Version) (Payload, error) {
	if version.Polarity() != Public {
		return Payload{}, xerr.New(xerr.InvalidVersion, "version is not a public-key version").With("version", version.String())
	}
	var keyData [33]byte
	switch len(k.pub) {
	case 33:
		copy(keyData[:], k.pub)
	case 32:
		copy(keyData[1:], k.pub)
	default:
		return Payload{}, xerr.New(xerr.InvalidKeyData, "public key has unexpected length").With("length", strconv.Itoa(len(k.pub)))
	}
	return Payload{
		Version:           version,
		Depth:             k.meta.Depth,
		ParentFingerprint: k.meta.ParentFingerprint,
		ChildNumber:       k.meta.ChildNumber,
		ChainCode:         k.chainCode,
		KeyData:           keyData,
	}, nil
}

// ExtendedPublicKeyFromPayload reconstructs a live ExtendedPublicKey from a
// parsed Payload, the counterpart to Payload. backend must match
// payload.Version's registered curve, if any. KeyData is interpreted per
// backend: a 33-byte compressed point for secp256k1/nist256p1, or a
// 0x00-prefixed 32-byte point for ed25519 (see Payload above).
func ExtendedPublicKeyFromPayload(payload Payload, backend curve.Backend) (*ExtendedPublicKey, error) {
	if payload.Version.Polarity() != Public {
		return nil, xerr.New(xerr.InvalidVersion, "payload version is not a public-key version").
			With("version", payload.Version.String())
	}
	if name := payload.Version.CurveName(); name != "" && name != backend.Name() {
		return nil, xerr.New(xerr.InvalidVersion, "payload version curve does not match backend").
			With("version", payload.Version.String()).With("backend", backend.Name())
	}

	var candidate []byte
	if backend.Name() == "ed25519" {
		if payload.KeyData[0] != 0x00 {
			return nil, xerr.New(xerr.InvalidKeyData, "ed25519 public key data must be prefixed with 0x00")
		}
		candidate = payload.KeyData[1:]
	} else {
		candidate = payload.KeyData[:]
	}

	pub, err := backend.ParsePublicKey(candidate)
	if err != nil {
		return nil, xerr.Wrap(err, xerr.InvalidKeyData, "parsing public key from payload")
	}
	return &ExtendedPublicKey{
		backend:   backend,
		pub:       pub,
		chainCode: payload.ChainCode,
		meta: Metadata{
			Depth:             payload.Depth,
			ParentFingerprint: payload.ParentFingerprint,
			ChildNumber:       payload.ChildNumber,
		},
	}, nil
}
