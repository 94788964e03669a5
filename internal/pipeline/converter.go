package pipeline

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
	"github.com/riskibarqy/worldcup-insights/internal/domain/validation"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	"github.com/riskibarqy/worldcup-insights/internal/ingestion/textparser"
)

var stadiumKeyPattern = regexp.MustCompile(`[^a-z0-9]+`)

// TeamResolver maps raw team text to an identity. It must never fail.
type TeamResolver interface {
	Resolve(name string) team.Team
}

// Result is one converted tournament with its validation report. A document is
// produced even when validation reports errors.
type Result struct {
	Year       int                     `json:"year"`
	Document   worldcup.Document       `json:"document"`
	Groups     worldcup.GroupsDocument `json:"groups"`
	Validation validation.Result       `json:"validation"`
}

// MatchCount is the number of matches across all rounds.
func (r Result) MatchCount() int {
	total := 0
	for _, round := range r.Document.Rounds {
		total += len(round.Matches)
	}
	return total
}

// Converter maps parsed tournaments onto the canonical document layout.
type Converter struct {
	teams     TeamResolver
	validator *validation.Validator
}

func NewConverter(teams TeamResolver, validator *validation.Validator) *Converter {
	return &Converter{teams: teams, validator: validator}
}

// Convert builds worldcup.json and worldcup.groups.json from a parsed
// tournament and validates both.
func (c *Converter) Convert(t textparser.Tournament) Result {
	out := Result{
		Year: t.Year,
		Document: worldcup.Document{
			Name:   t.Name,
			Rounds: make([]worldcup.Round, 0),
		},
		Groups: c.convertGroups(t),
	}

	groupStage := make([]textparser.Match, 0, len(t.Matches))
	knockout := make([]textparser.Match, 0)
	for _, m := range t.Matches {
		if m.Knockout {
			knockout = append(knockout, m)
			continue
		}
		groupStage = append(groupStage, m)
	}

	out.Document.Rounds = append(out.Document.Rounds, c.matchdays(groupStage)...)
	out.Document.Rounds = append(out.Document.Rounds, c.knockoutRounds(knockout)...)

	out.Validation = validation.NewResult()
	if c.validator != nil {
		out.Validation = c.validator.Document(out.Document).Merge(c.validator.GroupsDocument(out.Groups))
	}
	return out
}

// matchdays buckets group matches by date, one round per distinct date.
func (c *Converter) matchdays(matches []textparser.Match) []worldcup.Round {
	if len(matches) == 0 {
		return nil
	}

	byDate := make(map[string][]textparser.Match)
	for _, m := range matches {
		byDate[m.Date] = append(byDate[m.Date], m)
	}
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	slices.Sort(dates)

	out := make([]worldcup.Round, 0, len(dates))
	for i, date := range dates {
		out = append(out, c.round(fmt.Sprintf("Matchday %d", i+1), byDate[date]))
	}
	return out
}

// knockoutRounds emits known rounds in bracket order, then any other round
// names in the order they were first seen.
func (c *Converter) knockoutRounds(matches []textparser.Match) []worldcup.Round {
	if len(matches) == 0 {
		return nil
	}

	byRound := make(map[string][]textparser.Match)
	encountered := make([]string, 0)
	for _, m := range matches {
		name := worldcup.NormalizeRoundName(m.Round)
		if _, ok := byRound[name]; !ok {
			encountered = append(encountered, name)
		}
		byRound[name] = append(byRound[name], m)
	}

	out := make([]worldcup.Round, 0, len(byRound))
	for _, name := range worldcup.KnockoutOrder {
		if bucket, ok := byRound[name]; ok {
			out = append(out, c.round(name, bucket))
		}
	}
	for _, name := range encountered {
		if slices.Contains(worldcup.KnockoutOrder, name) {
			continue
		}
		out = append(out, c.round(name, byRound[name]))
	}
	return out
}

func (c *Converter) round(name string, matches []textparser.Match) worldcup.Round {
	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, func(a, b textparser.Match) int {
		return cmp.Compare(a.Num, b.Num)
	})

	out := worldcup.Round{Name: name, Matches: make([]worldcup.Match, 0, len(sorted))}
	for i, m := range sorted {
		out.Matches = append(out.Matches, c.convertMatch(m, i+1))
	}
	return out
}

func (c *Converter) convertMatch(m textparser.Match, fallbackNum int) worldcup.Match {
	num := m.Num
	if num <= 0 {
		num = fallbackNum
	}

	out := worldcup.Match{
		Num:       num,
		Date:      m.Date,
		Time:      m.Time,
		TeamA:     c.teams.Resolve(m.TeamA).Ref(),
		TeamB:     c.teams.Resolve(m.TeamB).Ref(),
		ScoreA:    m.Score.A,
		ScoreB:    m.Score.B,
		HalftimeA: m.Score.HalftimeA,
		HalftimeB: m.Score.HalftimeB,
		Knockout:  m.Knockout,
		City:      m.City,
	}
	out.GoalsA, out.GoalsB = RunningGoals(m.GoalsA, m.GoalsB)

	if m.Knockout {
		out.ExtraScores = &worldcup.ExtraScores{
			ExtraTimeA: m.Score.ExtraTimeA,
			ExtraTimeB: m.Score.ExtraTimeB,
			PenaltyA:   m.Score.PenaltyA,
			PenaltyB:   m.Score.PenaltyB,
		}
	} else {
		out.Group = m.Group
	}
	if m.Stadium != "" {
		out.Stadium = &worldcup.Stadium{Key: StadiumKey(m.Stadium), Name: m.Stadium}
	}

	return out
}

func (c *Converter) convertGroups(t textparser.Tournament) worldcup.GroupsDocument {
	out := worldcup.GroupsDocument{Name: t.Name, Groups: make([]worldcup.Group, 0, len(t.Groups))}
	for _, g := range t.Groups {
		group := worldcup.Group{Name: g.Name, Teams: make([]team.Team, 0, len(g.Teams))}
		for _, name := range g.Teams {
			group.Teams = append(group.Teams, c.teams.Resolve(name).Ref())
		}
		out.Groups = append(out.Groups, group)
	}
	return out
}

type sidedGoal struct {
	goal  textparser.Goal
	sideA bool
}

// RunningGoals replays both goal lists in (minute, offset) order and stamps
// each goal with the score right after it. An own goal stays in its scorer's
// list but counts for the other side.
func RunningGoals(goalsA, goalsB []textparser.Goal) ([]worldcup.Goal, []worldcup.Goal) {
	all := make([]sidedGoal, 0, len(goalsA)+len(goalsB))
	for _, g := range goalsA {
		all = append(all, sidedGoal{goal: g, sideA: true})
	}
	for _, g := range goalsB {
		all = append(all, sidedGoal{goal: g})
	}
	slices.SortStableFunc(all, func(a, b sidedGoal) int {
		return cmp.Or(
			cmp.Compare(a.goal.Minute, b.goal.Minute),
			cmp.Compare(offsetOrZero(a.goal.Offset), offsetOrZero(b.goal.Offset)),
		)
	})

	outA := make([]worldcup.Goal, 0, len(goalsA))
	outB := make([]worldcup.Goal, 0, len(goalsB))
	scoreA, scoreB := 0, 0
	for _, item := range all {
		if item.sideA != item.goal.OwnGoal {
			scoreA++
		} else {
			scoreB++
		}

		g := worldcup.Goal{
			Scorer:  item.goal.Scorer,
			Minute:  item.goal.Minute,
			Offset:  item.goal.Offset,
			ScoreA:  scoreA,
			ScoreB:  scoreB,
			OwnGoal: item.goal.OwnGoal,
			Penalty: item.goal.Penalty,
		}
		if item.sideA {
			outA = append(outA, g)
		} else {
			outB = append(outB, g)
		}
	}

	return outA, outB
}

// StadiumKey derives a stable lowercase key from a stadium name.
func StadiumKey(name string) string {
	return strings.Trim(stadiumKeyPattern.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

func offsetOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
