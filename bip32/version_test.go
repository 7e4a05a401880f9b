package bip32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupVersion(t *testing.T) {
	v, ok := LookupVersion(0x0488ade4)
	require.True(t, ok)
	require.Equal(t, "xprv", v.String())
	require.Equal(t, Private, v.Polarity())

	_, ok = LookupVersion(0xdeadbeef)
	require.False(t, ok)
}

func TestLookupVersionSegwitMultisig(t *testing.T) {
	cases := []struct {
		raw  uint32
		name string
		pol  Polarity
	}{
		{0x0295b005, "Yprv", Private},
		{0x0295b43f, "Ypub", Public},
		{0x02aa7a99, "Zprv", Private},
		{0x02aa7ed3, "Zpub", Public},
		{0x024285b5, "Uprv", Private},
		{0x024289ef, "Upub", Public},
		{0x02575048, "Vprv", Private},
		{0x02575483, "Vpub", Public},
	}
	for _, c := range cases {
		v, ok := LookupVersion(c.raw)
		require.True(t, ok, c.name)
		require.Equal(t, c.name, v.String())
		require.Equal(t, c.pol, v.Polarity())
	}

	// The single-key y/z/u/v pairs must remain distinct from their
	// multisig Y/Z/U/V counterparts above.
	single, ok := LookupVersion(0x049d7878)
	require.True(t, ok)
	require.Equal(t, "yprv", single.String())
}

func TestRegisterVersionRejectsDuplicate(t *testing.T) {
	_, err := RegisterVersion("dupe", 0x0488ade4, Private, "secp256k1")
	require.Error(t, err)
}

func TestRegisterVersionNewEntry(t *testing.T) {
	v, err := RegisterVersion("altprv", 0x11223344, Private, "secp256k1")
	require.NoError(t, err)
	found, ok := LookupVersion(0x11223344)
	require.True(t, ok)
	require.Equal(t, v, found)
}
