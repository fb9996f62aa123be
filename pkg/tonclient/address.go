package tonclient

import (
	"bytes"
	"strings"

	"github.com/xssnick/tonutils-go/address"
)

// ParseAnyAddress parses either a friendly (EQ.../UQ...) or a raw
// (workchain:hex) TON address.
func ParseAnyAddress(s string) (*address.Address, error) {
	if strings.Contains(s, ":") {
		return address.ParseRawAddr(s)
	}
	return address.ParseAddr(s)
}

// SameAddress reports whether two address strings point at the same account,
// regardless of representation. Unparseable inputs fall back to a
// case-insensitive string comparison.
func SameAddress(a, b string) bool {
	pa, errA := ParseAnyAddress(a)
	pb, errB := ParseAnyAddress(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	return pa.Workchain() == pb.Workchain() && bytes.Equal(pa.Data(), pb.Data())
}
