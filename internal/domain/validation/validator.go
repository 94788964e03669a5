package validation

import (
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

// Kind selects the document layout Raw validates against.
type Kind string

const (
	KindTournament Kind = "tournament"
	KindGroups     Kind = "groups"
)

var (
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timePattern = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

var requiredMatchFields = []string{"team1", "team2", "score1", "score2", "date"}

// TeamLookup resolves a team name against the identity database.
type TeamLookup interface {
	Lookup(name string) (team.Team, bool)
}

// Validator checks serialized tournament documents. All rules run on the
// generic map form so converted and on-disk documents are treated alike.
type Validator struct {
	teams TeamLookup
}

// New builds a validator; a nil lookup skips the database membership check.
func New(teams TeamLookup) *Validator {
	return &Validator{teams: teams}
}

// Match validates one serialized match.
func (v *Validator) Match(m map[string]any, knockout bool) Result {
	out := NewResult()
	for _, field := range requiredMatchFields {
		if _, ok := m[field]; !ok {
			out.AddError("Missing required field: %s", field)
		}
	}
	if !out.Valid {
		return out
	}

	out = out.Merge(v.teamsOf(m))
	out = out.Merge(scores(m, knockout))
	out = out.Merge(date(m["date"]))
	if clock, ok := m["time"].(string); ok && clock != "" {
		out = out.Merge(timeOfDay(clock))
	}
	out = out.Merge(goalsConsistency(m))
	if knockout || m["knockout"] == true {
		out = out.Merge(knockoutFields(m))
	}

	return out
}

// Tournament validates a worldcup.json document.
func (v *Validator) Tournament(doc map[string]any) Result {
	out := NewResult()
	if _, ok := doc["name"]; !ok {
		out.AddError("Missing 'name' field")
	}
	raw, ok := doc["rounds"]
	if !ok {
		out.AddError("Missing 'rounds' field")
		return out
	}
	rounds, ok := raw.([]any)
	if !ok {
		out.AddError("'rounds' should be a list")
		return out
	}
	if len(rounds) == 0 {
		out.AddError("'rounds' is empty")
		return out
	}

	seen := make(map[int]struct{})
	total := 0
	for roundIdx, item := range rounds {
		round, ok := item.(map[string]any)
		if !ok {
			out.AddError("Round %d is not a dictionary", roundIdx)
			continue
		}

		name, _ := round["name"].(string)
		if name == "" {
			name = fmt.Sprintf("Round %d", roundIdx)
		}
		matches, _ := round["matches"].([]any)
		if len(matches) == 0 {
			out.AddWarning("Round '%s' has no matches", name)
			continue
		}

		knockout := worldcup.IsKnockoutName(name)
		for matchIdx, entry := range matches {
			total++
			num, hasNum := 0, false
			match, ok := entry.(map[string]any)
			if ok {
				num, hasNum = asInt(match["num"])
			}
			label := matchIdx + 1
			if hasNum && num > 0 {
				label = num
			}
			if !ok {
				out.AddError("Match %d in '%s' is not a dictionary", label, name)
				continue
			}

			if hasNum {
				if _, dup := seen[num]; dup {
					out.AddWarning("Duplicate match number %d in %s", num, name)
				}
				seen[num] = struct{}{}
			}

			out = out.Merge(v.Match(match, knockout).Prefixed(fmt.Sprintf("Match %d in '%s': ", label, name)))
		}
	}

	if total == 0 {
		out.AddWarning("No matches found in tournament")
	}
	return out
}

// Groups validates a worldcup.groups.json document.
func (v *Validator) Groups(doc map[string]any) Result {
	out := NewResult()
	if _, ok := doc["name"]; !ok {
		out.AddError("Missing 'name' field")
	}
	raw, ok := doc["groups"]
	if !ok {
		out.AddError("Missing 'groups' field")
		return out
	}
	groups, ok := raw.([]any)
	if !ok {
		out.AddError("'groups' should be a list")
		return out
	}

	seen := make(map[string]struct{})
	for groupIdx, item := range groups {
		group, ok := item.(map[string]any)
		if !ok {
			out.AddError("Group %d is not a dictionary", groupIdx)
			continue
		}

		name, _ := group["name"].(string)
		if name == "" {
			name = fmt.Sprintf("Group %d", groupIdx)
		}
		members, _ := group["teams"].([]any)
		if len(members) == 0 {
			out.AddWarning("Group '%s' has no teams", name)
			continue
		}

		for _, member := range members {
			entry, ok := member.(map[string]any)
			if !ok {
				continue
			}
			code, _ := entry["code"].(string)
			teamName, _ := entry["name"].(string)

			if _, dup := seen[code]; dup {
				out.AddWarning("Team %s (%s) appears in multiple groups", code, teamName)
			}
			seen[code] = struct{}{}

			if teamName == "" {
				out.AddError("Team in %s has no name", name)
			}
			if len(code) != 3 {
				out.AddWarning("Team '%s' has invalid code: '%s'", teamName, code)
			}
		}
	}

	return out
}

// Document serializes a typed document and validates it.
func (v *Validator) Document(doc worldcup.Document) Result {
	generic, err := toMap(doc)
	if err != nil {
		out := NewResult()
		out.AddError("Document could not be serialized: %v", err)
		return out
	}
	return v.Tournament(generic)
}

// GroupsDocument serializes a typed groups document and validates it.
func (v *Validator) GroupsDocument(doc worldcup.GroupsDocument) Result {
	generic, err := toMap(doc)
	if err != nil {
		out := NewResult()
		out.AddError("Groups document could not be serialized: %v", err)
		return out
	}
	return v.Groups(generic)
}

// Raw decodes JSON bytes and validates them as the given kind.
func (v *Validator) Raw(data []byte, kind Kind) Result {
	var generic map[string]any
	if err := sonic.Unmarshal(data, &generic); err != nil {
		out := NewResult()
		out.AddError("Invalid JSON: %v", err)
		return out
	}
	if kind == KindGroups {
		return v.Groups(generic)
	}
	return v.Tournament(generic)
}

func (v *Validator) teamsOf(m map[string]any) Result {
	out := NewResult()

	nameA, codeA := teamFields(m["team1"])
	nameB, codeB := teamFields(m["team2"])

	if nameA == "" {
		out.AddError("Team 1 name is empty")
	}
	if nameB == "" {
		out.AddError("Team 2 name is empty")
	}
	if nameA != "" && nameA == nameB {
		out.AddError("Team 1 and Team 2 are the same: %s", nameA)
	}

	if codeA != "" && len(codeA) != 3 {
		out.AddWarning("Team 1 code '%s' is not 3 characters", codeA)
	}
	if codeB != "" && len(codeB) != 3 {
		out.AddWarning("Team 2 code '%s' is not 3 characters", codeB)
	}

	if v.teams != nil {
		for _, name := range []string{nameA, nameB} {
			if name == "" {
				continue
			}
			if _, ok := v.teams.Lookup(name); !ok {
				out.AddWarning("Team '%s' not found in database (suggested code: %s)", name, team.GenerateCode(name))
			}
		}
	}

	return out
}

func teamFields(v any) (name, code string) {
	switch t := v.(type) {
	case map[string]any:
		name, _ = t["name"].(string)
		code, _ = t["code"].(string)
	case string:
		name = t
	case nil:
	default:
		name = fmt.Sprint(t)
	}
	return name, code
}

func scores(m map[string]any, knockout bool) Result {
	out := NewResult()

	scoreA, okA := nonNegative(m["score1"])
	if !okA {
		out.AddError("Invalid score1: %v", m["score1"])
	}
	scoreB, okB := nonNegative(m["score2"])
	if !okB {
		out.AddError("Invalid score2: %v", m["score2"])
	}

	rawHalfA, rawHalfB := m["score1i"], m["score2i"]
	if rawHalfA == nil || rawHalfB == nil {
		return out
	}
	halfA, okHalfA := nonNegative(rawHalfA)
	if !okHalfA {
		out.AddError("Invalid halftime score1i: %v", rawHalfA)
	}
	halfB, okHalfB := nonNegative(rawHalfB)
	if !okHalfB {
		out.AddError("Invalid halftime score2i: %v", rawHalfB)
	}

	if knockout {
		return out
	}
	if okA && okHalfA && halfA > scoreA {
		out.AddWarning("Halftime score1 (%d) > final score1 (%d)", halfA, scoreA)
	}
	if okB && okHalfB && halfB > scoreB {
		out.AddWarning("Halftime score2 (%d) > final score2 (%d)", halfB, scoreB)
	}

	return out
}

func date(v any) Result {
	out := NewResult()

	value, _ := v.(string)
	if value == "" {
		out.AddError("Date is empty")
		return out
	}
	if !datePattern.MatchString(value) {
		out.AddError("Invalid date format: %s. Expected YYYY-MM-DD", value)
		return out
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		out.AddError("Invalid date: %s. Not a calendar date", value)
	}

	return out
}

func timeOfDay(value string) Result {
	out := NewResult()
	if !timePattern.MatchString(value) {
		out.AddWarning("Time format should be HH:MM: %s", value)
		return out
	}
	if _, err := time.Parse("15:04", value); err != nil {
		out.AddWarning("Invalid time: %s", value)
	}
	return out
}

// goalsConsistency compares goal lists with the score. An own goal listed
// under one side counts for the other. Shootout results are compared against
// the extra-time score.
func goalsConsistency(m map[string]any) Result {
	out := NewResult()

	goalsA, _ := m["goals1"].([]any)
	goalsB, _ := m["goals2"].([]any)
	if len(goalsA) == 0 && len(goalsB) == 0 {
		return out
	}

	forA, forB := 0, 0
	tally := func(goals []any, own, other *int) {
		for _, g := range goals {
			if entry, ok := g.(map[string]any); ok && entry["owngoal"] == true {
				*other++
				continue
			}
			*own++
		}
	}
	tally(goalsA, &forA, &forB)
	tally(goalsB, &forB, &forA)

	scoreA, okA := asInt(m["score1"])
	scoreB, okB := asInt(m["score2"])
	if etA, ok := asInt(m["score1et"]); ok {
		if etB, ok := asInt(m["score2et"]); ok {
			scoreA, scoreB, okA, okB = etA, etB, true, true
		}
	}
	if !okA || !okB {
		return out
	}

	if forA != scoreA || forB != scoreB {
		out.AddWarning("Goals count mismatch: %d-%d from goal lists, but score is %d-%d", forA, forB, scoreA, scoreB)
	}
	return out
}

func knockoutFields(m map[string]any) Result {
	out := NewResult()

	etA, okEtA := asInt(m["score1et"])
	etB, okEtB := asInt(m["score2et"])
	penA, okPenA := asInt(m["score1p"])
	penB, okPenB := asInt(m["score2p"])

	if okEtA && okEtB && etA == etB && (!okPenA || !okPenB) {
		out.AddWarning("Match ended level after ET (%d-%d) but no penalty scores provided", etA, etB)
	}
	if okPenA && okPenB && penA == penB {
		out.AddError("Penalty shootout ended level: %d-%d", penA, penB)
	}

	return out
}

func nonNegative(v any) (int, bool) {
	n, ok := asInt(v)
	if !ok || n < 0 {
		return 0, false
	}
	return n, true
}

// asInt accepts whole numbers in any of the shapes a JSON decoder produces.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case interface{ Int64() (int64, error) }:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

func toMap(v any) (map[string]any, error) {
	data, err := sonic.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := sonic.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
