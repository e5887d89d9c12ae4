package repository

// Ref is a minimal id/name view of a venue or artist, used by listings and
// name searches.
type Ref struct {
	ID   uint64
	Name string
}
