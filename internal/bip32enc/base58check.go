// Package bip32enc holds the Base58Check codec shared by bip32.Payload and
// slip10's wire format, per spec.md section 9: fixed-size scratch buffers
// for the checksum framing. The base58 library calls still allocate their
// own result, and Decode allocates one more slice for the returned payload.
package bip32enc

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	// PayloadSize is the 78-byte extended-key payload: version(4) ||
	// depth(1) || parentFingerprint(4) || childNumber(4) || chainCode(32)
	// || keyData(33).
	PayloadSize = 78
	checksumSize = 4
	// decodeBufSize is PayloadSize+checksumSize, the exact byte length a
	// valid Base58Check-decoded extended key string must have.
	decodeBufSize = PayloadSize + checksumSize
	// encodeBufSize upper-bounds the base58 text form: 82 raw bytes never
	// exceed 112 base58 characters (log(256)/log(58) * 82 ≈ 111.96); 123
	// leaves headroom matching spec.md section 9's stated scratch size.
	encodeBufSize = 123
)

// doubleSHA256 is the checksum hash spec.md section 4.6 specifies.
func doubleSHA256(b []byte) [32]byte {
	first := sha256.Sum256(b)
	return sha256.Sum256(first[:])
}

// Encode appends a 4-byte double-SHA256 checksum to payload and
// Base58-encodes the result. payload must be exactly PayloadSize bytes.
func Encode(payload []byte) (string, error) {
	if len(payload) != PayloadSize {
		return "", fmt.Errorf("bip32enc: payload must be %d bytes, got %d", PayloadSize, len(payload))
	}
	var buf [decodeBufSize]byte
	copy(buf[:PayloadSize], payload)
	checksum := doubleSHA256(payload)
	copy(buf[PayloadSize:], checksum[:checksumSize])

	var scratch [encodeBufSize]byte
	encoded := base58.Encode(buf[:])
	n := copy(scratch[:], encoded)
	return string(scratch[:n]), nil
}

// Decode Base58-decodes s, verifies its checksum, and returns the
// PayloadSize-byte payload with the checksum stripped.
func Decode(s string) ([]byte, error) {
	decoded := base58.Decode(s)
	if len(decoded) != decodeBufSize {
		return nil, fmt.Errorf("bip32enc: decoded length %d, want %d", len(decoded), decodeBufSize)
	}
	var buf [decodeBufSize]byte
	copy(buf[:], decoded)

	payload := buf[:PayloadSize]
	wantChecksum := buf[PayloadSize:]
	gotChecksum := doubleSHA256(payload)
	for i := 0; i < checksumSize; i++ {
		if gotChecksum[i] != wantChecksum[i] {
			return nil, fmt.Errorf("bip32enc: checksum mismatch")
		}
	}

	out := make([]byte, PayloadSize)
	copy(out, payload)
	return out, nil
}
