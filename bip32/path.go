package bip32

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/shieldwallet/hdkeys/xerr"
)

// HardenedOffset is added to a child index to mark it hardened, per
// BIP-0032's ser32(i) with i >= 2^31.
const HardenedOffset uint32 = 0x80000000

// ChildNumber is a single derivation-path component: an index in
// [0, 2^31) for a normal child, or HardenedOffset+[0, 2^31) for a
// hardened one.
type ChildNumber uint32

// Hardened builds the hardened ChildNumber for index, which must be in
// [0, 2^31).
func Hardened(index uint32) ChildNumber {
	return ChildNumber(HardenedOffset + index)
}

// IsHardened reports whether c carries the hardened bit.
func (c ChildNumber) IsHardened() bool {
	return uint32(c) >= HardenedOffset
}

// Index returns c's index with the hardened bit stripped.
func (c ChildNumber) Index() uint32 {
	return uint32(c) &^ HardenedOffset
}

// String renders the canonical form: the bare index for a normal child,
// index followed by ' for a hardened one.
func (c ChildNumber) String() string {
	if c.IsHardened() {
		return strconv.FormatUint(uint64(c.Index()), 10) + "'"
	}
	return strconv.FormatUint(uint64(c.Index()), 10)
}

// DerivationPath is an ordered list of ChildNumbers, the decoded form of a
// string like "m/0'/1/2h".
type DerivationPath []ChildNumber

// ParsePath parses a derivation path string. The leading "m/" (or "M/") is
// optional and case-insensitive; a bare "m" or "M" with no components
// denotes the master key itself; components are separated by "/"; a
// hardened component carries a trailing ', h, or H. An empty string, and
// a prefix with nothing after it ("m/"), are both InvalidPath — only the
// bare "m"/"M" form (no trailing slash) means "the master key, zero
// components".
// ParsePath collects every malformed component rather than stopping at
// the first one, so a caller fixing a typo'd path sees every problem in
// one pass instead of iterating error-by-error.
func ParsePath(s string) (DerivationPath, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, xerr.New(xerr.InvalidPath, "empty path").With("path", s)
	}

	rest := trimmed
	switch {
	case rest == "m" || rest == "M":
		return DerivationPath{}, nil
	case strings.HasPrefix(rest, "m/"), strings.HasPrefix(rest, "M/"):
		rest = rest[2:]
	}
	if rest == "" {
		return nil, xerr.New(xerr.InvalidPath, "path has no components after the m/ prefix").With("path", s)
	}

	parts := strings.Split(rest, "/")
	path := make(DerivationPath, 0, len(parts))
	var errs *multierror.Error
	for _, part := range parts {
		if part == "" {
			errs = multierror.Append(errs, fmt.Errorf("empty path component"))
			continue
		}
		hardened := false
		last := part[len(part)-1]
		if last == '\'' || last == 'h' || last == 'H' {
			hardened = true
			part = part[:len(part)-1]
		}
		n, err := strconv.ParseUint(part, 10, 32)
		if err != nil || n >= uint64(HardenedOffset) {
			errs = multierror.Append(errs, fmt.Errorf("invalid path component %q", part))
			continue
		}
		idx := ChildNumber(n)
		if hardened {
			idx = Hardened(uint32(n))
		}
		path = append(path, idx)
	}
	if errs.ErrorOrNil() != nil {
		return nil, xerr.Wrap(errs, xerr.InvalidPath, "parsing derivation path").With("path", s)
	}
	return path, nil
}

// HardenedPath is a convenience constructor for an all-hardened path from
// raw indices, the only kind SLIP-0010 ed25519 derivation accepts.
func HardenedPath(indices ...uint32) DerivationPath {
	path := make(DerivationPath, len(indices))
	for i, idx := range indices {
		path[i] = Hardened(idx)
	}
	return path
}

// IsHardenedOnly reports whether every component of the path is hardened.
func (p DerivationPath) IsHardenedOnly() bool {
	for _, c := range p {
		if !c.IsHardened() {
			return false
		}
	}
	return true
}

// String renders the canonical "m/..." form.
func (p DerivationPath) String() string {
	if len(p) == 0 {
		return "m"
	}
	parts := make([]string, len(p)+1)
	parts[0] = "m"
	for i, c := range p {
		parts[i+1] = c.String()
	}
	return strings.Join(parts, "/")
}
