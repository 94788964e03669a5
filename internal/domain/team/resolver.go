package team

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// substringMinLen keeps short keys like "us" from matching inside "belarus".
const substringMinLen = 4

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	stopWordPattern   = regexp.MustCompile(`(?i)\b(the|of|and|republic)\b`)
	nonLetterPattern  = regexp.MustCompile(`[^A-Za-z]`)

	apostropheReplacer = strings.NewReplacer("’", "'", "‘", "'", "`", "'")
)

var abbreviations = map[string]string{
	"USA": "USA",
	"US":  "USA",
	"REP": "Republic",
	"DEM": "Democratic",
}

// Strategy resolves a normalized name against the database. Strategies are tried
// in order until one reports a match.
type Strategy func(r *Resolver, name string) (Entry, bool)

// Resolver maps free-text team names to canonical identities.
type Resolver struct {
	entries    []Entry
	byKey      map[string]Entry
	byFolded   map[string]Entry
	strategies []Strategy
}

var defaultResolver = NewResolver(defaultEntries)

// DefaultResolver returns the resolver backed by the built-in database.
func DefaultResolver() *Resolver {
	return defaultResolver
}

func NewResolver(entries []Entry) *Resolver {
	r := &Resolver{
		entries:  make([]Entry, 0, len(entries)),
		byKey:    make(map[string]Entry, len(entries)),
		byFolded: make(map[string]Entry, len(entries)),
	}
	for _, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry.Key))
		if key == "" {
			continue
		}
		entry.Key = key
		if _, exists := r.byKey[key]; exists {
			continue
		}
		r.entries = append(r.entries, entry)
		r.byKey[key] = entry

		folded := foldDiacritics(key)
		if _, exists := r.byFolded[folded]; !exists {
			r.byFolded[folded] = entry
		}
	}
	r.strategies = []Strategy{exactMatch, foldedMatch, substringMatch}

	return r
}

// Normalize collapses whitespace and expands abbreviation tokens such as "U.S.A."
// or "Rep." before lookup.
func Normalize(name string) string {
	name = apostropheReplacer.Replace(name)
	fields := strings.Fields(whitespacePattern.ReplaceAllString(name, " "))
	for i, field := range fields {
		bare := strings.ToUpper(strings.ReplaceAll(field, ".", ""))
		if expanded, ok := abbreviations[bare]; ok {
			fields[i] = expanded
		}
	}
	return strings.Join(fields, " ")
}

// Lookup resolves a name through the strategy chain.
func (r *Resolver) Lookup(name string) (Team, bool) {
	normalized := Normalize(name)
	if normalized == "" {
		return Team{}, false
	}
	key := strings.ToLower(normalized)

	for _, strategy := range r.strategies {
		entry, ok := strategy(r, key)
		if !ok {
			continue
		}
		out := Team{Name: entry.Name, Code: entry.Code}
		if strings.TrimSpace(name) != entry.Name {
			out.HistoricalName = strings.TrimSpace(name)
		}
		return out, true
	}

	return Team{}, false
}

// Resolve never fails; names outside the database keep their raw text and get
// UnknownCode so the validator can flag them later.
func (r *Resolver) Resolve(name string) Team {
	if t, ok := r.Lookup(name); ok {
		return t
	}
	return Team{Name: strings.TrimSpace(name), Code: UnknownCode}
}

// Exists reports whether the name resolves to a known team.
func (r *Resolver) Exists(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Teams lists each canonical identity once, in database order.
func (r *Resolver) Teams() []Team {
	seen := make(map[string]struct{}, len(r.entries))
	out := make([]Team, 0, len(r.entries))
	for _, entry := range r.entries {
		if _, ok := seen[entry.Code]; ok {
			continue
		}
		seen[entry.Code] = struct{}{}
		out = append(out, Team{Name: entry.Name, Code: entry.Code})
	}
	return out
}

// ByCode finds the canonical identity for a code.
func (r *Resolver) ByCode(code string) (Team, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, entry := range r.entries {
		if entry.Code == code {
			return Team{Name: entry.Name, Code: entry.Code}, true
		}
	}
	return Team{}, false
}

// Aliases lists every database key that maps to the code.
func (r *Resolver) Aliases(code string) []string {
	out := make([]string, 0, 2)
	for _, entry := range r.entries {
		if entry.Code == code {
			out = append(out, entry.Key)
		}
	}
	return out
}

// Historical returns the succession notes recorded for a code.
func (r *Resolver) Historical(code string) []Lineage {
	return Lineages(strings.ToUpper(strings.TrimSpace(code)))
}

// GenerateCode derives a fallback three-letter code for a team missing from the
// database.
func GenerateCode(name string) string {
	cleaned := stopWordPattern.ReplaceAllString(name, "")
	cleaned = nonLetterPattern.ReplaceAllString(foldDiacritics(cleaned), "")
	cleaned = strings.ToUpper(cleaned)
	if len(cleaned) >= 3 {
		return cleaned[:3]
	}
	return cleaned + strings.Repeat("X", 3-len(cleaned))
}

func exactMatch(r *Resolver, name string) (Entry, bool) {
	entry, ok := r.byKey[name]
	return entry, ok
}

func foldedMatch(r *Resolver, name string) (Entry, bool) {
	entry, ok := r.byFolded[foldDiacritics(name)]
	return entry, ok
}

// substringMatch compares whole words, so "Niger" never lands on "Nigeria".
func substringMatch(r *Resolver, name string) (Entry, bool) {
	folded := foldDiacritics(name)
	if len(folded) < substringMinLen {
		return Entry{}, false
	}
	words := strings.Fields(folded)
	for _, entry := range r.entries {
		key := foldDiacritics(entry.Key)
		if len(key) < substringMinLen {
			continue
		}
		keyWords := strings.Fields(key)
		if containsWords(words, keyWords) || containsWords(keyWords, words) {
			return entry, true
		}
	}
	return Entry{}, false
}

// containsWords reports whether needle appears as a contiguous run in hay.
func containsWords(hay, needle []string) bool {
	if len(needle) == 0 || len(needle) > len(hay) {
		return false
	}
	for i := 0; i+len(needle) <= len(hay); i++ {
		if slices.Equal(hay[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
