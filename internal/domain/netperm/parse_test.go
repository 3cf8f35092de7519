package netperm

import (
	"errors"
	"net/netip"
	"strings"
	"testing"

	"peerperm/internal/netaddr"
)

func TestParseBind(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		wantFlags Flags
		wantAddr  string
	}{
		{
			name:      "explicit permissions",
			spec:      "bloomfilter,noban@10.0.0.1:8333",
			wantFlags: BloomFilter | NoBan,
			wantAddr:  "10.0.0.1:8333",
		},
		{
			name:      "no permissions prefix grants the implicit bundle",
			spec:      "10.0.0.1:8333",
			wantFlags: All | Implicit,
			wantAddr:  "10.0.0.1:8333",
		},
		{
			name:      "empty permissions segment grants nothing",
			spec:      "@10.0.0.1:8333",
			wantFlags: None,
			wantAddr:  "10.0.0.1:8333",
		},
		{
			name:      "all shorthand is not implicit",
			spec:      "all@10.0.0.1:8333",
			wantFlags: All,
			wantAddr:  "10.0.0.1:8333",
		},
		{
			name:      "named blockfilters is explicit",
			spec:      "blockfilters@10.0.0.1:8333",
			wantFlags: BlockFiltersExplicit,
			wantAddr:  "10.0.0.1:8333",
		},
		{
			name:      "stray commas are tolerated",
			spec:      "relay,,mempool,@10.0.0.1:8333",
			wantFlags: Relay | Mempool,
			wantAddr:  "10.0.0.1:8333",
		},
		{
			name:      "ipv6 endpoint",
			spec:      "noban@[::1]:8333",
			wantFlags: NoBan,
			wantAddr:  "[::1]:8333",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bp, err := ParseBind(tt.spec)
			if err != nil {
				t.Fatalf("ParseBind(%q) returned error: %v", tt.spec, err)
			}
			if bp.Flags != tt.wantFlags {
				t.Errorf("flags = %b, want %b", bp.Flags, tt.wantFlags)
			}
			if want := netip.MustParseAddrPort(tt.wantAddr); bp.Addr != want {
				t.Errorf("addr = %v, want %v", bp.Addr, want)
			}
		})
	}
}

func TestParseBind_ImpliedPermissions(t *testing.T) {
	bp, err := ParseBind("bloomfilter,noban@10.0.0.1:8333")
	if err != nil {
		t.Fatalf("ParseBind returned error: %v", err)
	}

	if !bp.Flags.Has(Download) {
		t.Error("Expected noban grant to imply download")
	}
	if bp.Flags.Has(Implicit) {
		t.Error("Expected explicit grant not to carry the implicit marker")
	}
}

func TestParseBind_UnknownPermission(t *testing.T) {
	_, err := ParseBind("bogus@10.0.0.1:8333")
	if err == nil {
		t.Fatal("Expected error for unknown permission")
	}

	var unknownErr *UnknownLabelError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Expected UnknownLabelError, got %T: %v", err, err)
	}
	if unknownErr.Token != "bogus" {
		t.Errorf("Expected offending token 'bogus', got %q", unknownErr.Token)
	}
}

func TestParseBind_InvalidEndpoint(t *testing.T) {
	for _, spec := range []string{"relay@not-an-address", "relay@", "relay@10.0.0.1", "not-an-address"} {
		_, err := ParseBind(spec)
		if err == nil {
			t.Errorf("Expected error for %q", spec)
			continue
		}
		var targetErr *InvalidTargetError
		if !errors.As(err, &targetErr) {
			t.Errorf("Expected InvalidTargetError for %q, got %T: %v", spec, err, err)
		}
	}
}

func TestParseSubnet(t *testing.T) {
	tests := []struct {
		name       string
		spec       string
		wantFlags  Flags
		wantSubnet string
		wantDir    netaddr.Direction
	}{
		{
			name:       "explicit relay on a subnet",
			spec:       "relay@192.168.0.0/16",
			wantFlags:  Relay,
			wantSubnet: "192.168.0.0/16",
			wantDir:    netaddr.DirectionBoth,
		},
		{
			name:       "bare subnet grants the implicit bundle",
			spec:       "192.168.0.0/16",
			wantFlags:  All | Implicit,
			wantSubnet: "192.168.0.0/16",
			wantDir:    netaddr.DirectionBoth,
		},
		{
			name:       "single address becomes a host subnet",
			spec:       "noban@10.11.12.13",
			wantFlags:  NoBan,
			wantSubnet: "10.11.12.13/32",
			wantDir:    netaddr.DirectionBoth,
		},
		{
			name:       "inbound marker",
			spec:       "mempool@in:10.0.0.0/8",
			wantFlags:  Mempool,
			wantSubnet: "10.0.0.0/8",
			wantDir:    netaddr.DirectionIn,
		},
		{
			name:       "outbound marker",
			spec:       "addr@out:2001:db8::/32",
			wantFlags:  Addr,
			wantSubnet: "2001:db8::/32",
			wantDir:    netaddr.DirectionOut,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp, dir, err := ParseSubnet(tt.spec)
			if err != nil {
				t.Fatalf("ParseSubnet(%q) returned error: %v", tt.spec, err)
			}
			if sp.Flags != tt.wantFlags {
				t.Errorf("flags = %b, want %b", sp.Flags, tt.wantFlags)
			}
			if want := netip.MustParsePrefix(tt.wantSubnet); sp.Subnet != want {
				t.Errorf("subnet = %v, want %v", sp.Subnet, want)
			}
			if dir != tt.wantDir {
				t.Errorf("direction = %v, want %v", dir, tt.wantDir)
			}
		})
	}
}

func TestParseSubnet_Errors(t *testing.T) {
	if _, _, err := ParseSubnet("bogus@192.168.0.0/16"); err == nil {
		t.Error("Expected error for unknown permission")
	} else {
		var unknownErr *UnknownLabelError
		if !errors.As(err, &unknownErr) || unknownErr.Token != "bogus" {
			t.Errorf("Expected UnknownLabelError for 'bogus', got %v", err)
		}
	}

	for _, spec := range []string{"relay@10.0.0.0/99", "relay@nonsense", "relay@in:"} {
		_, _, err := ParseSubnet(spec)
		if err == nil {
			t.Errorf("Expected error for %q", spec)
			continue
		}
		var targetErr *InvalidTargetError
		if !errors.As(err, &targetErr) {
			t.Errorf("Expected InvalidTargetError for %q, got %T: %v", spec, err, err)
		}
	}
}

func TestParseSubnetAnyDirection(t *testing.T) {
	sp, err := ParseSubnetAnyDirection("relay@in:192.168.0.0/16")
	if err != nil {
		t.Fatalf("ParseSubnetAnyDirection returned error: %v", err)
	}
	if !sp.Flags.Has(Relay) {
		t.Error("Expected relay permission")
	}
	if sp.Subnet != netip.MustParsePrefix("192.168.0.0/16") {
		t.Errorf("subnet = %v, want 192.168.0.0/16", sp.Subnet)
	}
}

func TestParseBind_RoundTrip(t *testing.T) {
	sets := []Flags{
		BloomFilter,
		ForceRelay,
		NoBan | Mempool,
		BloomFilter | Relay | Addr,
		All,
	}

	for _, set := range sets {
		spec := strings.Join(set.Strings(), ",") + "@10.0.0.1:8333"
		bp, err := ParseBind(spec)
		if err != nil {
			t.Fatalf("ParseBind(%q) returned error: %v", spec, err)
		}
		for _, entry := range labelTable {
			if set.Has(entry.flag) != bp.Flags.Has(entry.flag) {
				t.Errorf("%q: membership of %s changed across round trip", spec, entry.label)
			}
		}
		if bp.Flags.Has(Implicit) {
			t.Errorf("%q: round trip must not introduce the implicit marker", spec)
		}
	}
}
