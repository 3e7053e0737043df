package domain

// Reorder moves the entry at from to to (a single-element move, not a
// swap) and renumbers every position to its new array index. Slot ids
// travel with their entries untouched, which is what keeps entry
// identity stable across a drag. A no-op move or an index outside the
// list returns the input unchanged. The engine is index-space-agnostic:
// during a run the caller offsets indices past the locked prefix before
// calling in.
func Reorder(entries []Entry, from, to int) []Entry {
	if from == to || from < 0 || to < 0 || from >= len(entries) || to >= len(entries) {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	out = append(out, entries[:from]...)
	out = append(out, entries[from+1:]...)
	out = append(out[:to], append([]Entry{entries[from]}, out[to:]...)...)
	return renumber(out)
}
