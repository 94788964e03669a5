package team

// Directory describes team identity lookups needed by use cases.
type Directory interface {
	Resolve(name string) Team
	ByCode(code string) (Team, bool)
	Aliases(code string) []string
	Historical(code string) []Lineage
}

var _ Directory = (*Resolver)(nil)
