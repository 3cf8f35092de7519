package netperm

// labelTable fixes the canonical label order used for rendering. The same
// labels are accepted by the parsers via flagsByLabel.
var labelTable = []struct {
	flag  Flags
	label string
}{
	{BloomFilter, "bloomfilter"},
	{Relay, "relay"},
	{ForceRelay, "forcerelay"},
	{Download, "download"},
	{NoBan, "noban"},
	{Mempool, "mempool"},
	{Addr, "addr"},
	{BlockFilters, "blockfilters"},
}

// flagsByLabel is the inverse mapping used when parsing permission specs.
// Naming "blockfilters" outright grants the explicit form; "all" is an input
// shorthand for the full bundle and is never rendered.
var flagsByLabel = map[string]Flags{
	"bloomfilter":  BloomFilter,
	"relay":        Relay,
	"forcerelay":   ForceRelay,
	"download":     Download,
	"noban":        NoBan,
	"mempool":      Mempool,
	"addr":         Addr,
	"blockfilters": BlockFiltersExplicit,
	"all":          All,
}

// Doc describes each grantable permission, for help text and the admin API.
var Doc = []string{
	"bloomfilter (allow requesting filtered blocks even when filter serving is disabled)",
	"relay (relay transactions even in blocks-only mode, with unlimited announcements)",
	"forcerelay (relay transactions that are already in the mempool; implies relay)",
	"download (allow header requests during initial sync and downloads past the upload limit)",
	"noban (do not ban or disconnect for misbehavior; implies download)",
	"mempool (allow requesting the contents of the mempool)",
	"addr (serve address requests without the privacy-preserving cache)",
	"blockfilters (allow requesting compact block filters even when filter serving is disabled)",
}

// Strings returns the canonical labels of every permission present in f, in
// a fixed order. The Implicit marker is never rendered.
func (f Flags) Strings() []string {
	var labels []string
	for _, entry := range labelTable {
		if f.Has(entry.flag) {
			labels = append(labels, entry.label)
		}
	}
	return labels
}

// FromLabel resolves a canonical label to its flag value. The second return
// value is false for labels outside the canonical table.
func FromLabel(label string) (Flags, bool) {
	f, ok := flagsByLabel[label]
	return f, ok
}
