package bip39

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestAllZeroEntropyVector exercises the best-known BIP-0039 fixture: 16
// zero bytes of entropy encodes to twelve "abandon"s followed by the
// checksum word "about".
func TestAllZeroEntropyVector(t *testing.T) {
	entropy := make([]byte, 16)
	m, err := NewMnemonic(entropy, English)
	require.NoError(t, err)
	require.Equal(t, "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about", m.String())

	decoded, err := NewMnemonicFromString(m.String(), English)
	require.NoError(t, err)
	require.Equal(t, entropy, decoded.Entropy())
}

func TestMnemonicRoundTripAllSizes(t *testing.T) {
	for _, bits := range []int{128, 160, 192, 224, 256} {
		entropy, err := NewEntropy(bits, bytes.NewReader(bytes.Repeat([]byte{0x42}, bits/8)))
		require.NoError(t, err)
		require.Len(t, entropy, bits/8)

		m, err := NewMnemonic(entropy, English)
		require.NoError(t, err)

		wordCount := len(strings.Fields(m.String()))
		require.Contains(t, []int{12, 15, 18, 21, 24}, wordCount)

		decoded, err := NewMnemonicFromString(m.String(), English)
		require.NoError(t, err)
		require.Equal(t, entropy, decoded.Entropy())
		require.True(t, IsMnemonicValid(m.String(), English))
	}
}

func TestNewEntropyRejectsBadBitSize(t *testing.T) {
	_, err := NewEntropy(129, bytes.NewReader(make([]byte, 64)))
	require.Error(t, err)
}

func TestNewMnemonicRejectsBadEntropyLength(t *testing.T) {
	_, err := NewMnemonic(make([]byte, 17), English)
	require.Error(t, err)
}

func TestBadWordCount(t *testing.T) {
	_, err := NewMnemonicFromString("abandon abandon abandon", English)
	require.Error(t, err)
	require.False(t, IsMnemonicValid("abandon abandon abandon", English))
}

func TestUnknownWord(t *testing.T) {
	phrase := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zzzznotaword"
	_, err := NewMnemonicFromString(phrase, English)
	require.Error(t, err)
}

func TestInvalidChecksum(t *testing.T) {
	// Swapping the final checksum word for a different, still-valid-index
	// word almost certainly breaks the checksum.
	phrase := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon zoo"
	require.False(t, IsMnemonicValid(phrase, English))
}

func TestToSeedIsDeterministicAndPassphraseSensitive(t *testing.T) {
	entropy := make([]byte, 16)
	m, err := NewMnemonic(entropy, English)
	require.NoError(t, err)

	seedA := m.ToSeed("")
	seedB := m.ToSeed("")
	require.Equal(t, seedA, seedB)

	seedC := m.ToSeed("TREZOR")
	require.NotEqual(t, seedA, seedC)
	require.Len(t, seedA[:], 64)
}

func TestLanguageEqual(t *testing.T) {
	require.True(t, English.Equal(English))
	custom := RegisterLanguage("custom", englishWordData)
	require.False(t, English.Equal(custom))
}
