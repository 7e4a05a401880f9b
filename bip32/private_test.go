package bip32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fixedSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i + 1)
	}
	return seed
}

func TestNewMasterKeyIsDeterministic(t *testing.T) {
	seed := fixedSeed()
	k1, err := NewMasterKey(seed)
	require.NoError(t, err)
	k2, err := NewMasterKey(seed)
	require.NoError(t, err)

	require.Equal(t, 0, k1.Scalar().Cmp(k2.Scalar()))
	require.Equal(t, k1.ChainCode(), k2.ChainCode())
}

func TestNewMasterKeyRejectsShortSeed(t *testing.T) {
	_, err := NewMasterKey(make([]byte, 8))
	require.Error(t, err)
}

func TestDeriveChildHardenedAndNormal(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)

	hardened, err := master.DeriveChild(Hardened(0))
	require.NoError(t, err)
	require.Equal(t, byte(1), hardened.Metadata().Depth)
	require.True(t, hardened.Metadata().ChildNumber.IsHardened())

	normal, err := master.DeriveChild(ChildNumber(0))
	require.NoError(t, err)
	require.NotEqual(t, 0, hardened.Scalar().Cmp(normal.Scalar()))
}

func TestNeuterAgreement(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)

	child, err := master.DeriveChild(ChildNumber(7))
	require.NoError(t, err)
	childPub, err := child.PublicKey()
	require.NoError(t, err)

	masterPub, err := master.PublicKey()
	require.NoError(t, err)
	pubChild, err := masterPub.DeriveChild(ChildNumber(7))
	require.NoError(t, err)

	require.Equal(t, childPub.PublicKeyBytes(), pubChild.PublicKeyBytes())
	require.Equal(t, childPub.ChainCode(), pubChild.ChainCode())
}

func TestPublicKeyRejectsHardenedChild(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)
	masterPub, err := master.PublicKey()
	require.NoError(t, err)

	_, err = masterPub.DeriveChild(Hardened(0))
	require.Error(t, err)
}

func TestDepthSaturatesAt255(t *testing.T) {
	cur, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)
	for i := 0; i < 260; i++ {
		cur, err = cur.DeriveChild(ChildNumber(uint32(i)))
		require.NoError(t, err)
	}
	require.Equal(t, byte(255), cur.Metadata().Depth)
}

func TestPayloadRoundTrip(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)

	payload, err := master.Payload(MainnetPrivate)
	require.NoError(t, err)
	s := payload.String()

	decoded, err := ParsePayload(s)
	require.NoError(t, err)
	require.Equal(t, payload.Encode(), decoded.Encode())

	pub, err := master.PublicKey()
	require.NoError(t, err)
	pubPayload, err := pub.Payload(MainnetPublic)
	require.NoError(t, err)
	pubDecoded, err := ParsePayload(pubPayload.String())
	require.NoError(t, err)
	require.Equal(t, pubPayload.Encode(), pubDecoded.Encode())
}

func TestPayloadRejectsWrongPolarity(t *testing.T) {
	master, err := NewMasterKey(fixedSeed())
	require.NoError(t, err)
	_, err = master.Payload(MainnetPublic)
	require.Error(t, err)
}
