package curve

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func testRoundTrip(t *testing.T, backend Backend) {
	t.Helper()
	scalar := big.NewInt(12345)
	pub, err := backend.PublicFromPrivate(scalar)
	require.NoError(t, err)

	parsed, err := backend.ParsePublicKey(pub)
	require.NoError(t, err)
	require.Equal(t, pub, parsed)

	priv := backend.SerializePrivateKey(scalar)
	scalar2, err := backend.ParsePrivateKey(priv)
	require.NoError(t, err)
	require.Equal(t, 0, scalar.Cmp(scalar2))
}

func TestSecp256k1RoundTrip(t *testing.T) {
	testRoundTrip(t, Secp256k1)
}

func TestNIST256p1RoundTrip(t *testing.T) {
	testRoundTrip(t, NIST256p1)
}

func TestTweakAddAgreement(t *testing.T) {
	for _, backend := range []Backend{Secp256k1, NIST256p1} {
		scalar := big.NewInt(7)
		tweak := big.NewInt(3)

		sumScalar, err := backend.TweakAddPrivate(scalar, tweak)
		require.NoError(t, err)
		wantPub, err := backend.PublicFromPrivate(sumScalar)
		require.NoError(t, err)

		basePub, err := backend.PublicFromPrivate(scalar)
		require.NoError(t, err)
		gotPub, err := backend.TweakAddPublic(basePub, tweak)
		require.NoError(t, err)

		require.Equal(t, wantPub, gotPub, "tweak*G + scalar*G must equal (scalar+tweak)*G for %s", backend.Name())
	}
}

func TestSecp256k1RejectsOutOfRangeScalar(t *testing.T) {
	tooBig := new(big.Int).Add(Secp256k1.Order(), big.NewInt(1))
	_, err := Secp256k1.ParsePrivateKey(Secp256k1.SerializePrivateKey(tooBig))
	require.Error(t, err)
}

func TestEd25519DerivesPublicKeyAndHasNoTweak(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i)
	}
	scalar, err := Ed25519.ParsePrivateKey(seed)
	require.NoError(t, err)

	pub, err := Ed25519.PublicFromPrivate(scalar)
	require.NoError(t, err)
	require.Len(t, pub, 32)

	parsed, err := Ed25519.ParsePublicKey(pub)
	require.NoError(t, err)
	require.Equal(t, pub, parsed)

	require.True(t, HardenedOnly(Ed25519))
	require.False(t, HardenedOnly(Secp256k1))
	require.False(t, HardenedOnly(NIST256p1))

	_, err = Ed25519.TweakAddPublic(pub, big.NewInt(1))
	require.ErrorIs(t, err, ErrTweakUnsupported)
	_, err = Ed25519.TweakAddPrivate(scalar, big.NewInt(1))
	require.ErrorIs(t, err, ErrTweakUnsupported)
}
