package netperm

// Flags is the set of network permissions granted to a peer connection,
// encoded as a fixed-width bit set. Composite permissions include the bits
// of the permissions they imply, so granting the composite always grants
// the prerequisite.
type Flags uint32

const (
	None Flags = 0

	// BloomFilter allows the peer to query bloom filters even when filter
	// serving is disabled node-wide.
	BloomFilter Flags = 1 << 1

	// Relay accepts and relays transactions from the peer even in
	// blocks-only mode, and exempts it from transaction announcement limits.
	Relay Flags = 1 << 3

	// ForceRelay relays transactions from the peer even when they are
	// already in the mempool. Forcerelay implies relay.
	ForceRelay Flags = 1<<2 | Relay

	// Download allows header requests during initial block download and
	// block downloads past the upload target limit.
	Download Flags = 1 << 6

	// NoBan exempts the peer from banning, disconnection and discouragement
	// for misbehavior. Noban implies download.
	NoBan Flags = 1<<4 | Download

	// Mempool allows the peer to query the contents of the mempool.
	Mempool Flags = 1 << 5

	// Addr serves address queries without going through the
	// privacy-preserving address cache.
	Addr Flags = 1 << 7

	// BlockFilters allows the peer to query compact block filters even when
	// filter serving is disabled node-wide.
	BlockFilters Flags = 1 << 8

	// BlockFiltersExplicit marks a block filter permission that was named
	// outright rather than granted through the All bundle.
	BlockFiltersExplicit Flags = BlockFilters | 1<<9

	// Implicit marks a flag set where the grantor did not name fine-grained
	// permissions and the full default bundle was applied. The bit itself
	// grants nothing and is never rendered as a label.
	Implicit Flags = 1 << 31

	// All is the union of every elementary permission. It excludes the
	// Implicit marker and the explicit-request bit of BlockFiltersExplicit.
	All Flags = BloomFilter | ForceRelay | Relay | NoBan | Mempool | Download | Addr | BlockFilters
)

// Has reports whether every bit of p is set in f. This is a subset test:
// a composite permission is only present when all of its bits are.
func (f Flags) Has(p Flags) bool {
	return f&p == p
}

// Add sets all bits of p in f.
func (f *Flags) Add(p Flags) {
	*f |= p
}

// Clear removes all bits of p from f. Clearing a composite clears its
// prerequisite bits as well; pass only the composite's own bit to keep them.
func (f *Flags) Clear(p Flags) {
	*f &^= p
}
