package slip10

import (
	"testing"

	"github.com/shieldwallet/hdkeys/bip32"
	"github.com/shieldwallet/hdkeys/curve"
	"github.com/stretchr/testify/require"
)

func fixedSeed() []byte {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i * 3)
	}
	return seed
}

func TestMasterKeyAllCurvesDeterministic(t *testing.T) {
	for _, backend := range []curve.Backend{curve.Secp256k1, curve.NIST256p1, curve.Ed25519} {
		k1, err := MasterKey(fixedSeed(), backend)
		require.NoError(t, err, backend.Name())
		k2, err := MasterKey(fixedSeed(), backend)
		require.NoError(t, err, backend.Name())
		require.Equal(t, 0, k1.Scalar().Cmp(k2.Scalar()), backend.Name())
		require.Equal(t, k1.ChainCode(), k2.ChainCode(), backend.Name())
	}
}

func TestEd25519HardenedOnly(t *testing.T) {
	master, err := MasterKey(fixedSeed(), curve.Ed25519)
	require.NoError(t, err)

	_, err = DeriveChild(master, bip32.ChildNumber(0))
	require.Error(t, err, "non-hardened ed25519 derivation must fail")

	child, err := DeriveChild(master, bip32.Hardened(0))
	require.NoError(t, err)
	require.True(t, child.Metadata().ChildNumber.IsHardened())
}

func TestEd25519DerivePath(t *testing.T) {
	master, err := MasterKey(fixedSeed(), curve.Ed25519)
	require.NoError(t, err)

	path := bip32.HardenedPath(44, 0, 0, 0)
	leaf, err := DerivePath(master, path)
	require.NoError(t, err)
	require.Equal(t, byte(len(path)), leaf.Metadata().Depth)
}

func TestNIST256p1DerivationConverges(t *testing.T) {
	master, err := MasterKey(fixedSeed(), curve.NIST256p1)
	require.NoError(t, err)

	for i := uint32(0); i < 20; i++ {
		child, err := DeriveChild(master, bip32.ChildNumber(i))
		require.NoError(t, err)
		require.Equal(t, byte(1), child.Metadata().Depth)

		hardenedChild, err := DeriveChild(master, bip32.Hardened(i))
		require.NoError(t, err)
		require.True(t, hardenedChild.Metadata().ChildNumber.IsHardened())
	}
}

func TestSecp256k1DeriveChildDelegatesToBip32(t *testing.T) {
	master, err := MasterKey(fixedSeed(), curve.Secp256k1)
	require.NoError(t, err)
	viaSlip10, err := DeriveChild(master, bip32.ChildNumber(1))
	require.NoError(t, err)
	viaBip32, err := master.DeriveChild(bip32.ChildNumber(1))
	require.NoError(t, err)
	require.Equal(t, 0, viaSlip10.Scalar().Cmp(viaBip32.Scalar()))
}
