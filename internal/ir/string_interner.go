package ir

// StringInterner deduplicates repeated strings (span names repeat heavily —
// millions of identical leaves in a real capture) into one backing slice
// referenced by index. Generalizes the string-interning table the Chrome
// converter already kept for itself (stringMap/stringArray) so every parser
// that walks a leaf-heavy format can share it.
//
// Go strings are immutable and already share their backing array across
// copies, so this buys index-sized storage for repeated names rather than
// O(1) clone semantics (which Go strings already have) — see DESIGN.md for
// why no Arc<str>-equivalent wrapper type was introduced.
type StringInterner struct {
	index map[string]int
	table []string
}

// NewStringInterner returns an empty interner.
func NewStringInterner() *StringInterner {
	return &StringInterner{index: make(map[string]int)}
}

// Intern returns the stable index of s, adding it to the table on first use.
func (si *StringInterner) Intern(s string) int {
	if idx, ok := si.index[s]; ok {
		return idx
	}
	idx := len(si.table)
	si.index[s] = idx
	si.table = append(si.table, s)
	return idx
}

// String returns the string stored at idx.
func (si *StringInterner) String(idx int) string {
	if idx < 0 || idx >= len(si.table) {
		return ""
	}
	return si.table[idx]
}

// Len returns the number of distinct strings interned so far.
func (si *StringInterner) Len() int {
	return len(si.table)
}
