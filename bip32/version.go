package bip32

import "github.com/shieldwallet/hdkeys/xerr"

// Polarity distinguishes a version's private/public half.
type Polarity int

const (
	Private Polarity = iota
	Public
)

// Version is a 4-byte extended-key version prefix, registered per SLIP-132
// (https://github.com/satoshilabs/slips/blob/master/slip-0132.md). Each
// entry pairs a private and public prefix that must always be decoded and
// encoded together.
type Version struct {
	name     string
	value    uint32
	polarity Polarity
	curve    string
}

// Uint32 returns the version's 4-byte big-endian encoded value.
func (v Version) Uint32() uint32 { return v.value }

// Polarity reports whether v is a private or public version.
func (v Version) Polarity() Polarity { return v.polarity }

// CurveName is the curve.Backend.Name() this version is registered for.
func (v Version) CurveName() string { return v.curve }

// String returns the version's conventional name, e.g. "xprv".
func (v Version) String() string { return v.name }

var (
	MainnetPrivate = Version{"xprv", 0x0488ade4, Private, "secp256k1"}
	MainnetPublic  = Version{"xpub", 0x0488b21e, Public, "secp256k1"}
	TestnetPrivate = Version{"tprv", 0x04358394, Private, "secp256k1"}
	TestnetPublic  = Version{"tpub", 0x043587cf, Public, "secp256k1"}

	// Yprv / Zprv are the SLIP-132 single-key segwit version variants:
	// y/Y for P2SH-P2WPKH (nested segwit), z/Z for native P2WPKH.
	Yprv = Version{"yprv", 0x049d7878, Private, "secp256k1"}
	Ypub = Version{"ypub", 0x049d7cb2, Public, "secp256k1"}
	Zprv = Version{"zprv", 0x04b2430c, Private, "secp256k1"}
	Zpub = Version{"zpub", 0x04b24746, Public, "secp256k1"}

	UprvTestnet = Version{"uprv", 0x044a4e28, Private, "secp256k1"}
	UpubTestnet = Version{"upub", 0x044a5262, Public, "secp256k1"}
	VprvTestnet = Version{"vprv", 0x045f18bc, Private, "secp256k1"}
	VpubTestnet = Version{"vpub", 0x045f1cf6, Public, "secp256k1"}

	// YprvSHWSH / ZprvWSH are the SLIP-132 multi-sig segwit variants: Y
	// for P2SH-P2WSH (nested segwit multisig), Z for native P2WSH
	// multisig. Distinct version bytes from the single-key y/z pairs
	// above, despite both being "segwit".
	YprvSHWSH = Version{"Yprv", 0x0295b005, Private, "secp256k1"}
	YpubSHWSH = Version{"Ypub", 0x0295b43f, Public, "secp256k1"}
	ZprvWSH   = Version{"Zprv", 0x02aa7a99, Private, "secp256k1"}
	ZpubWSH   = Version{"Zpub", 0x02aa7ed3, Public, "secp256k1"}

	UprvSHWSHTestnet = Version{"Uprv", 0x024285b5, Private, "secp256k1"}
	UpubSHWSHTestnet = Version{"Upub", 0x024289ef, Public, "secp256k1"}
	VprvWSHTestnet   = Version{"Vprv", 0x02575048, Private, "secp256k1"}
	VpubWSHTestnet   = Version{"Vpub", 0x02575483, Public, "secp256k1"}
)

// registry indexes every known version by its raw 4-byte value, for
// ParsePayload's version lookup.
var registry = buildRegistry(
	MainnetPrivate, MainnetPublic,
	TestnetPrivate, TestnetPublic,
	Yprv, Ypub, Zprv, Zpub,
	UprvTestnet, UpubTestnet, VprvTestnet, VpubTestnet,
	YprvSHWSH, YpubSHWSH, ZprvWSH, ZpubWSH,
	UprvSHWSHTestnet, UpubSHWSHTestnet, VprvWSHTestnet, VpubWSHTestnet,
)

func buildRegistry(versions ...Version) map[uint32]Version {
	m := make(map[uint32]Version, len(versions))
	for _, v := range versions {
		m[v.value] = v
	}
	return m
}

// LookupVersion resolves a raw 4-byte version value against the SLIP-132
// registry. An unregistered value is not necessarily an error to the
// caller (spec.md's open question on unknown version bytes resolves to
// "decode succeeds with an opaque Version"); DecodePayload uses this to
// choose between the registered Version and an opaque one wrapping the
// raw value, and never rejects on it.
func LookupVersion(raw uint32) (Version, bool) {
	v, ok := registry[raw]
	return v, ok
}

// RegisterVersion adds a caller-supplied version pairing to the registry,
// for consumers that mint their own SLIP-132 prefixes (e.g. an altcoin
// fork). It returns an error if the raw value collides with an existing
// entry.
func RegisterVersion(name string, value uint32, polarity Polarity, curveName string) (Version, error) {
	if _, exists := registry[value]; exists {
		return Version{}, xerr.New(xerr.InvalidVersion, "version value already registered").With("value", name)
	}
	v := Version{name: name, value: value, polarity: polarity, curve: curveName}
	registry[value] = v
	return v, nil
}
