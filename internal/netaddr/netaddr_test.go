package netaddr

import (
	"net/netip"
	"testing"
)

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "10.0.0.1:8333", want: "10.0.0.1:8333"},
		{input: "[::1]:8333", want: "[::1]:8333"},
		{input: "0.0.0.0:0", want: "0.0.0.0:0"},
		{input: "10.0.0.1", wantErr: true},
		{input: "example.com:8333", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEndpoint(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEndpoint(%q) returned error: %v", tt.input, err)
			}
			if want := netip.MustParseAddrPort(tt.want); got != want {
				t.Errorf("ParseEndpoint(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestParseSubnet(t *testing.T) {
	tests := []struct {
		input    string
		want     string
		wantDir  Direction
		wantErr  bool
	}{
		{input: "192.168.0.0/16", want: "192.168.0.0/16", wantDir: DirectionBoth},
		{input: "in:192.168.0.0/16", want: "192.168.0.0/16", wantDir: DirectionIn},
		{input: "out:192.168.0.0/16", want: "192.168.0.0/16", wantDir: DirectionOut},
		{input: "10.1.2.3", want: "10.1.2.3/32", wantDir: DirectionBoth},
		{input: "in:2001:db8::1", want: "2001:db8::1/128", wantDir: DirectionIn},
		// host bits are masked away
		{input: "10.1.2.3/8", want: "10.0.0.0/8", wantDir: DirectionBoth},
		{input: "10.0.0.0/33", wantErr: true},
		{input: "nonsense", wantErr: true},
		{input: "in:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, dir, err := ParseSubnet(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSubnet(%q) returned error: %v", tt.input, err)
			}
			if want := netip.MustParsePrefix(tt.want); got != want {
				t.Errorf("ParseSubnet(%q) = %v, want %v", tt.input, got, want)
			}
			if dir != tt.wantDir {
				t.Errorf("ParseSubnet(%q) direction = %v, want %v", tt.input, dir, tt.wantDir)
			}
		})
	}
}

func TestDirection_Matches(t *testing.T) {
	if !DirectionBoth.Matches(DirectionIn) || !DirectionBoth.Matches(DirectionOut) {
		t.Error("Expected both to match either direction")
	}
	if DirectionIn.Matches(DirectionOut) {
		t.Error("Expected in not to match out")
	}
	if DirectionNone.Matches(DirectionBoth) {
		t.Error("Expected none to match nothing")
	}
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{"in": DirectionIn, "out": DirectionOut, "both": DirectionBoth} {
		got, err := ParseDirection(input)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v, want %v", input, got, err, want)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("Expected error for unknown direction")
	}
}
