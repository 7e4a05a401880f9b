// Package bip39 implements BIP-0039: entropy <-> mnemonic phrase <-> binary
// seed, with NFKD normalization and PBKDF2-HMAC-SHA512 seed derivation. It
// is the wordlist-registry and mnemonic-codec half of this module; bip32
// and slip10 consume its Mnemonic.ToSeed output.
package bip39

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"

	"github.com/shieldwallet/hdkeys/xerr"
	"github.com/shieldwallet/hdkeys/xzero"
)

const (
	pbkdf2Rounds = 2048
	seedSize     = 64
	saltPrefix   = "mnemonic"
)

// validEntropyBits is the set BIP-0039 allows: 128/160/192/224/256 bits.
var validEntropyBits = map[int]bool{128: true, 160: true, 192: true, 224: true, 256: true}

// validWordCounts mirrors validEntropyBits through the (bits+CS)/11 relation.
var validWordCounts = map[int]bool{12: true, 15: true, 18: true, 21: true, 24: true}

// Mnemonic is an immutable (language, normalized phrase) pair together with
// the entropy it encodes. The phrase itself carries no secret-clearing
// requirement (spec.md section 3: "low-entropy by design"); the 64-byte
// seed produced by ToSeed does.
type Mnemonic struct {
	lang    Language
	phrase  string
	entropy []byte
}

// NewEntropy fills a byte slice of the requested bit length using the
// caller-injected random source (spec.md section 6's "Random byte source").
// The core never calls crypto/rand itself.
func NewEntropy(bitSize int, rnd io.Reader) ([]byte, error) {
	if !validEntropyBits[bitSize] {
		return nil, xerr.New(xerr.BadEntropyBitCount, fmt.Sprintf("entropy bit length %d is not one of 128/160/192/224/256", bitSize)).
			With("bits", fmt.Sprint(bitSize))
	}
	entropy := make([]byte, bitSize/8)
	if _, err := io.ReadFull(rnd, entropy); err != nil {
		return nil, xerr.Wrap(err, xerr.BadEntropyBitCount, "reading random entropy")
	}
	return entropy, nil
}

// NewMnemonic encodes entropy into a phrase in the given language, per
// spec.md section 4.2 "Encode".
func NewMnemonic(entropy []byte, lang Language) (*Mnemonic, error) {
	bits := len(entropy) * 8
	if !validEntropyBits[bits] {
		return nil, xerr.New(xerr.BadEntropyBitCount, fmt.Sprintf("entropy length %d bytes is invalid", len(entropy))).
			With("bits", fmt.Sprint(bits))
	}

	checksumBits := bits / 32
	hash := sha256.Sum256(entropy)
	checksum := uint32(hash[0]) >> uint(8-checksumBits)

	var acc bitAccumulator
	wordCount := (bits + checksumBits) / 11
	words := make([]string, 0, wordCount)

	for _, b := range entropy {
		acc.pushBits(uint32(b), 8)
		for acc.remaining() >= 11 {
			idx := acc.takeBits(11)
			w, ok := lang.WordAt(int(idx))
			if !ok {
				return nil, xerr.New(xerr.InvalidKeyData, "wordlist lookup out of range")
			}
			words = append(words, w)
		}
	}
	acc.pushBits(checksum, checksumBits)
	for acc.remaining() >= 11 {
		idx := acc.takeBits(11)
		w, ok := lang.WordAt(int(idx))
		if !ok {
			return nil, xerr.New(xerr.InvalidKeyData, "wordlist lookup out of range")
		}
		words = append(words, w)
	}
	if acc.remaining() != 0 {
		panic("bip39: bit accumulator not drained after encode")
	}

	entropyCopy := make([]byte, len(entropy))
	copy(entropyCopy, entropy)
	return &Mnemonic{lang: lang, phrase: strings.Join(words, " "), entropy: entropyCopy}, nil
}

// NewMnemonicFromString decodes and validates phrase in the given language,
// per spec.md section 4.2 "Decode". The phrase is NFKD-normalized before
// splitting on whitespace.
func NewMnemonicFromString(phrase string, lang Language) (*Mnemonic, error) {
	normalized := normalizeNFKD(phrase)
	words := strings.Fields(normalized)
	if !validWordCounts[len(words)] {
		return nil, xerr.New(xerr.BadWordCount, fmt.Sprintf("phrase has %d words", len(words))).
			With("count", fmt.Sprint(len(words)))
	}

	totalBits := len(words) * 11
	entropyBits := totalBits * 32 / 33
	checksumBits := totalBits - entropyBits

	var acc bitAccumulator
	entropy := make([]byte, 0, entropyBits/8)
	for _, w := range words {
		idx, ok := lang.IndexOf(w)
		if !ok {
			return nil, xerr.New(xerr.UnknownWord, fmt.Sprintf("word %q is not in the %s list", w, lang)).
				With("word", w)
		}
		acc.pushBits(uint32(idx), 11)
		for acc.remaining() >= 8 && len(entropy) < entropyBits/8 {
			entropy = append(entropy, byte(acc.takeBits(8)))
		}
	}
	checksum := acc.takeBits(checksumBits)
	if acc.remaining() != 0 {
		panic("bip39: bit accumulator not drained after decode")
	}

	hash := sha256.Sum256(entropy)
	expected := uint32(hash[0]) >> uint(8-checksumBits)
	if checksum != expected {
		return nil, xerr.New(xerr.InvalidChecksum, "mnemonic checksum mismatch")
	}

	return &Mnemonic{lang: lang, phrase: strings.Join(words, " "), entropy: entropy}, nil
}

// IsMnemonicValid is a cheap validity check that discards the decoded
// mnemonic, matching spec.md section 6's Mnemonic::validate.
func IsMnemonicValid(phrase string, lang Language) bool {
	_, err := NewMnemonicFromString(phrase, lang)
	return err == nil
}

// Entropy returns the entropy this mnemonic encodes.
func (m *Mnemonic) Entropy() []byte {
	out := make([]byte, len(m.entropy))
	copy(out, m.entropy)
	return out
}

// String returns the NFKD-normalized phrase, words separated by single
// ASCII spaces.
func (m *Mnemonic) String() string {
	return m.phrase
}

// Language returns the runtime language handle this mnemonic was built
// against.
func (m *Mnemonic) Language() Language {
	return m.lang
}

// ToSeed derives the 64-byte BIP-0039 seed via PBKDF2-HMAC-SHA512 over the
// NFKD-normalized phrase, salted with "mnemonic" + NFKD-normalized
// passphrase, 2048 rounds. The returned array is sensitive; callers should
// xzero.Bytes(seed[:]) once done with it.
func (m *Mnemonic) ToSeed(passphrase string) [seedSize]byte {
	password := []byte(m.phrase)
	salt := []byte(saltPrefix + normalizeNFKD(passphrase))
	defer xzero.Bytes(salt)

	derived := pbkdf2.Key(password, salt, pbkdf2Rounds, seedSize, sha512.New)
	var seed [seedSize]byte
	copy(seed[:], derived)
	xzero.Bytes(derived)
	return seed
}

// normalizeNFKD applies Unicode NFKD normalization, with a quick-check fast
// path that avoids allocation when s is already in NFKD form (spec.md
// section 4.2).
func normalizeNFKD(s string) string {
	if norm.NFKD.IsNormalString(s) {
		return s
	}
	return norm.NFKD.String(s)
}
