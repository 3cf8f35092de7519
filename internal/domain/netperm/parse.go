package netperm

import (
	"net/netip"
	"strings"

	"peerperm/internal/netaddr"
)

// BindPermissions grants a permission set to every peer accepted on a fixed
// listening endpoint.
type BindPermissions struct {
	Flags Flags
	Addr  netip.AddrPort
}

// SubnetPermissions grants a permission set to every peer whose address
// falls within a subnet.
type SubnetPermissions struct {
	Flags  Flags
	Subnet netip.Prefix
}

// parsePermissions strips the optional "perm[,perm...]@" prefix from spec
// and resolves the labels, returning the flags and the remaining target
// segment. Without a prefix the full default bundle is granted and the set
// is marked implicit.
func parsePermissions(spec string) (Flags, string, error) {
	perms, target, found := strings.Cut(spec, "@")
	if !found {
		return All | Implicit, spec, nil
	}

	var flags Flags
	for _, token := range strings.Split(perms, ",") {
		if token == "" {
			// tolerate stray commas
			continue
		}
		f, ok := FromLabel(token)
		if !ok {
			return None, "", &UnknownLabelError{Token: token}
		}
		flags.Add(f)
	}
	return flags, target, nil
}

// ParseBind parses a "perm[,perm...]@host:port" or plain "host:port" spec
// into an address-bound permission grant. Either the full record resolves or
// an error is returned; there is no partial result.
func ParseBind(spec string) (BindPermissions, error) {
	flags, target, err := parsePermissions(spec)
	if err != nil {
		return BindPermissions{}, err
	}

	addr, err := netaddr.ParseEndpoint(target)
	if err != nil {
		return BindPermissions{}, &InvalidTargetError{Segment: target, Err: err}
	}
	return BindPermissions{Flags: flags, Addr: addr}, nil
}

// ParseSubnet parses a "perm[,perm...]@subnet" or plain "subnet" spec into a
// subnet-bound permission grant plus the connection directions it applies
// to. Direction comes from the subnet segment's optional in:/out: marker and
// defaults to both.
func ParseSubnet(spec string) (SubnetPermissions, netaddr.Direction, error) {
	flags, target, err := parsePermissions(spec)
	if err != nil {
		return SubnetPermissions{}, netaddr.DirectionNone, err
	}

	subnet, dir, err := netaddr.ParseSubnet(target)
	if err != nil {
		return SubnetPermissions{}, netaddr.DirectionNone, &InvalidTargetError{Segment: target, Err: err}
	}
	return SubnetPermissions{Flags: flags, Subnet: subnet}, dir, nil
}

// ParseSubnetAnyDirection is ParseSubnet for callers that do not care which
// directions the grant applies to.
func ParseSubnetAnyDirection(spec string) (SubnetPermissions, error) {
	sp, _, err := ParseSubnet(spec)
	return sp, err
}
