package netaddr

import "fmt"

// Direction describes which connection directions a rule applies to.
type Direction uint8

const (
	DirectionNone Direction = 0
	// DirectionIn matches connections initiated by the remote peer.
	DirectionIn Direction = 1 << 0
	// DirectionOut matches connections initiated by the local node.
	DirectionOut Direction = 1 << 1
	// DirectionBoth matches regardless of who initiated the connection.
	DirectionBoth = DirectionIn | DirectionOut
)

// Matches reports whether d covers at least one direction of other.
func (d Direction) Matches(other Direction) bool {
	return d&other != 0
}

func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "in"
	case DirectionOut:
		return "out"
	case DirectionBoth:
		return "both"
	}
	return "none"
}

// ParseDirection parses "in", "out" or "both".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "in":
		return DirectionIn, nil
	case "out":
		return DirectionOut, nil
	case "both":
		return DirectionBoth, nil
	}
	return DirectionNone, fmt.Errorf("invalid direction %q, must be 'in', 'out' or 'both'", s)
}

// MarshalText implements encoding.TextMarshaler so directions serialize as
// their string form in JSON payloads.
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
