package bip32

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// maxDepth saturates at 255: depth is a single byte in the extended-key
// payload, and BIP-0032 does not define derivation past it.
const maxDepth = 255

// Metadata is the non-secret bookkeeping every extended key (private or
// public) carries: its depth from the master, its parent's fingerprint,
// and the child index it was derived with.
type Metadata struct {
	Depth             byte
	ParentFingerprint [4]byte
	ChildNumber       ChildNumber
}

// ChildMetadata builds the Metadata for a child derived from a key with
// metadata m and public key parentPub, incrementing depth and saturating
// at maxDepth rather than wrapping. Exported for slip10, whose nist256p1
// retry loop and ed25519 derivation construct ExtendedPrivateKey values
// directly rather than through DeriveChild.
func ChildMetadata(m Metadata, parentPub []byte, index ChildNumber) Metadata {
	return childMetadata(m, parentPub, index)
}

func childMetadata(m Metadata, parentPub []byte, index ChildNumber) Metadata {
	depth := m.Depth
	if depth < maxDepth {
		depth++
	}
	return Metadata{
		Depth:             depth,
		ParentFingerprint: fingerprint(parentPub),
		ChildNumber:       index,
	}
}

// fingerprint is the first 4 bytes of RIPEMD160(SHA256(pubkey)), BIP-0032's
// hash160 identifier truncated to a fingerprint.
func fingerprint(pub []byte) [4]byte {
	sha := sha256.Sum256(pub)
	ripe := ripemd160.New()
	ripe.Write(sha[:])
	sum := ripe.Sum(nil)
	var fp [4]byte
	copy(fp[:], sum[:4])
	return fp
}

// Zero clears the parent fingerprint and child number, matching the
// zeroization contract applied to every secret-or-identifying field on an
// extended key.
func (m *Metadata) Zero() {
	m.ParentFingerprint = [4]byte{}
	m.ChildNumber = 0
	m.Depth = 0
}
