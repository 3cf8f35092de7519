package netaddr

import (
	"fmt"
	"net/netip"
	"strings"
)

// ParseEndpoint parses a fixed IP:port listening endpoint.
func ParseEndpoint(s string) (netip.AddrPort, error) {
	ap, err := netip.ParseAddrPort(s)
	if err != nil {
		return netip.AddrPort{}, fmt.Errorf("not a valid IP:port endpoint: %w", err)
	}
	return ap, nil
}

// ParseSubnet parses a CIDR subnet or a bare IP address (treated as a
// single-address subnet). An optional "in:" or "out:" marker restricts the
// connection directions the subnet applies to; without a marker the subnet
// applies to both directions.
func ParseSubnet(s string) (netip.Prefix, Direction, error) {
	dir := DirectionBoth
	switch {
	case strings.HasPrefix(s, "in:"):
		dir = DirectionIn
		s = strings.TrimPrefix(s, "in:")
	case strings.HasPrefix(s, "out:"):
		dir = DirectionOut
		s = strings.TrimPrefix(s, "out:")
	}

	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, DirectionNone, fmt.Errorf("not a valid subnet: %w", err)
		}
		return prefix.Masked(), dir, nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, DirectionNone, fmt.Errorf("not a valid subnet or IP address: %w", err)
	}
	return netip.PrefixFrom(addr, addr.BitLen()), dir, nil
}
