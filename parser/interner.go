package parser

// Interner deduplicates strings that repeat throughout a ledger: account
// names, currency codes and metadata keys. Interning all occurrences to
// one canonical string instance keeps large documents cheap to hold in
// memory.
//
// A pool belongs to a single parse run and is discarded with it.
type Interner struct {
	pool map[string]string
}

// NewInterner creates a new string interner with the given initial
// capacity.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical instance of s, adding it to the pool on
// first sight.
func (i *Interner) Intern(s string) string {
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// InternBytes interns the string form of a token's bytes. The temporary
// string created for the map lookup is optimized away by the compiler in
// the hit case, so only the first occurrence allocates.
func (i *Interner) InternBytes(b []byte) string {
	s := string(b)
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// Size returns the number of unique strings in the pool.
func (i *Interner) Size() int {
	return len(i.pool)
}
