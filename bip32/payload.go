package bip32

import (
	"encoding/binary"
	"fmt"

	"github.com/shieldwallet/hdkeys/internal/bip32enc"
	"github.com/shieldwallet/hdkeys/xerr"
)

// Payload is the 78-byte extended-key wire format spec.md section 4.6
// defines: version(4) || depth(1) || parentFingerprint(4) ||
// childNumber(4) || chainCode(32) || keyData(33). keyData is
// 0x00||privateScalar (private), a 33-byte compressed public point
// (secp256k1/nist256p1 public), or 0x00||32-byte point (ed25519 public);
// Version.Polarity says which polarity it is.
type Payload struct {
	Version           Version
	Depth             byte
	ParentFingerprint [4]byte
	ChildNumber       ChildNumber
	ChainCode         [32]byte
	KeyData           [33]byte
}

// Encode serializes p into the fixed 78-byte payload form.
func (p Payload) Encode() [bip32enc.PayloadSize]byte {
	var out [bip32enc.PayloadSize]byte
	binary.BigEndian.PutUint32(out[0:4], p.Version.Uint32())
	out[4] = p.Depth
	copy(out[5:9], p.ParentFingerprint[:])
	binary.BigEndian.PutUint32(out[9:13], uint32(p.ChildNumber))
	copy(out[13:45], p.ChainCode[:])
	copy(out[45:78], p.KeyData[:])
	return out
}

// DecodePayload parses a raw 78-byte payload. It does not itself validate
// that KeyData's polarity matches Version.Polarity(); callers that parse
// into ExtendedPrivateKey/ExtendedPublicKey enforce that cross-check since
// only they know which polarity they expect.
func DecodePayload(raw []byte) (Payload, error) {
	if len(raw) != bip32enc.PayloadSize {
		return Payload{}, xerr.New(xerr.InvalidPayload, fmt.Sprintf("payload must be %d bytes, got %d", bip32enc.PayloadSize, len(raw)))
	}
	versionRaw := binary.BigEndian.Uint32(raw[0:4])
	version, ok := LookupVersion(versionRaw)
	if !ok {
		// Unknown version bytes still decode: spec.md leaves the
		// registry open-ended, so an unregistered prefix becomes an
		// opaque Version carrying its raw value and a polarity inferred
		// from KeyData[0] (0x00 reads as Private, which includes
		// 0x00-prefixed ed25519 public keys).
		version = Version{name: fmt.Sprintf("0x%08x", versionRaw), value: versionRaw, polarity: polarityFromKeyData(raw[45])}
	}

	var p Payload
	p.Version = version
	p.Depth = raw[4]
	copy(p.ParentFingerprint[:], raw[5:9])
	p.ChildNumber = ChildNumber(binary.BigEndian.Uint32(raw[9:13]))
	copy(p.ChainCode[:], raw[13:45])
	copy(p.KeyData[:], raw[45:78])
	return p, nil
}

func polarityFromKeyData(firstByte byte) Polarity {
	if firstByte == 0x00 {
		return Private
	}
	return Public
}

// String Base58Check-encodes p, the textual xprv/xpub/... form.
func (p Payload) String() string {
	payload := p.Encode()
	s, err := bip32enc.Encode(payload[:])
	if err != nil {
		// Encode only fails on a wrong-length payload, which Payload.Encode
		// never produces.
		panic(err)
	}
	return s
}

// ParsePayload decodes a Base58Check extended-key string into its payload.
func ParsePayload(s string) (Payload, error) {
	raw, err := bip32enc.Decode(s)
	if err != nil {
		return Payload{}, xerr.Wrap(err, xerr.InvalidPayload, "decoding extended key string")
	}
	return DecodePayload(raw)
}
