package bip32

import (
	"math/big"
	"testing"

	"github.com/shieldwallet/hdkeys/curve"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTripAllVersionPairs(t *testing.T) {
	pairs := []struct {
		prv, pub Version
	}{
		{MainnetPrivate, MainnetPublic},
		{TestnetPrivate, TestnetPublic},
		{Yprv, Ypub},
		{Zprv, Zpub},
		{UprvTestnet, UpubTestnet},
		{VprvTestnet, VpubTestnet},
		{YprvSHWSH, YpubSHWSH},
		{ZprvWSH, ZpubWSH},
		{UprvSHWSHTestnet, UpubSHWSHTestnet},
		{VprvWSHTestnet, VpubWSHTestnet},
	}

	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)
	masterPub, err := master.PublicKey()
	require.NoError(t, err)

	for _, p := range pairs {
		prvPayload, err := master.Payload(p.prv)
		require.NoError(t, err, p.prv.String())
		s := prvPayload.String()

		decoded, err := ParsePayload(s)
		require.NoError(t, err, p.prv.String())
		require.Equal(t, p.prv.Uint32(), decoded.Version.Uint32())

		restored, err := ExtendedPrivateKeyFromPayload(decoded, curve.Secp256k1)
		require.NoError(t, err, p.prv.String())
		require.Equal(t, 0, master.Scalar().Cmp(restored.Scalar()))
		require.Equal(t, master.ChainCode(), restored.ChainCode())

		pubPayload, err := masterPub.Payload(p.pub)
		require.NoError(t, err, p.pub.String())
		pubDecoded, err := ParsePayload(pubPayload.String())
		require.NoError(t, err, p.pub.String())
		require.Equal(t, p.pub.Uint32(), pubDecoded.Version.Uint32())

		restoredPub, err := ExtendedPublicKeyFromPayload(pubDecoded, curve.Secp256k1)
		require.NoError(t, err, p.pub.String())
		require.Equal(t, masterPub.PublicKeyBytes(), restoredPub.PublicKeyBytes())
	}
}

func TestExtendedPrivateKeyFromPayloadRejectsWrongPolarity(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)
	pub, err := master.PublicKey()
	require.NoError(t, err)
	payload, err := pub.Payload(MainnetPublic)
	require.NoError(t, err)

	_, err = ExtendedPrivateKeyFromPayload(payload, curve.Secp256k1)
	require.Error(t, err)
}

func TestExtendedPublicKeyFromPayloadRejectsWrongPolarity(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)
	payload, err := master.Payload(MainnetPrivate)
	require.NoError(t, err)

	_, err = ExtendedPublicKeyFromPayload(payload, curve.Secp256k1)
	require.Error(t, err)
}

func TestExtendedPrivateKeyFromPayloadRejectsCurveMismatch(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)
	payload, err := master.Payload(MainnetPrivate)
	require.NoError(t, err)

	_, err = ExtendedPrivateKeyFromPayload(payload, curve.Ed25519)
	require.Error(t, err)
}

func TestExtendedPrivateKeyFromPayloadRejectsBadPrefix(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)
	payload, err := master.Payload(MainnetPrivate)
	require.NoError(t, err)
	payload.KeyData[0] = 0x01

	_, err = ExtendedPrivateKeyFromPayload(payload, curve.Secp256k1)
	require.Error(t, err)
}

func TestExtendedPublicKeyFromPayloadEd25519Convention(t *testing.T) {
	ed25519Public := Version{name: "ed25519pub", value: 0x11223344, polarity: Public, curve: "ed25519"}

	master, err := NewExtendedPrivateKeyRaw(curve.Ed25519, master25519Scalar(t), [32]byte{1}, Metadata{})
	require.NoError(t, err)
	pub, err := master.PublicKey()
	require.NoError(t, err)

	payload, err := pub.Payload(ed25519Public)
	require.NoError(t, err)
	require.Equal(t, byte(0x00), payload.KeyData[0])

	restored, err := ExtendedPublicKeyFromPayload(payload, curve.Ed25519)
	require.NoError(t, err)
	require.Equal(t, pub.PublicKeyBytes(), restored.PublicKeyBytes())
}

func master25519Scalar(t *testing.T) *big.Int {
	t.Helper()
	seed := fixedSeed()
	scalar, err := curve.Ed25519.ParsePrivateKey(seed)
	require.NoError(t, err)
	return scalar
}
