package worldcup

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
)

// Goal is one scoring event. ScoreA and ScoreB hold the running score right
// after the goal was applied.
type Goal struct {
	Scorer  string `json:"name"`
	Minute  int    `json:"minute"`
	Offset  *int   `json:"offset,omitempty"`
	ScoreA  int    `json:"score1"`
	ScoreB  int    `json:"score2"`
	OwnGoal bool   `json:"owngoal,omitempty"`
	Penalty bool   `json:"penalty,omitempty"`
}

// ExtraScores carries the knockout-only columns. Knockout matches always
// serialize all four keys, null when not applicable.
type ExtraScores struct {
	ExtraTimeA *int `json:"score1et"`
	ExtraTimeB *int `json:"score2et"`
	PenaltyA   *int `json:"score1p"`
	PenaltyB   *int `json:"score2p"`
}

type Stadium struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Match is the canonical record. ScoreA and ScoreB are the deciding result:
// the shootout score when penalties were taken, else the extra-time score,
// else the regulation score.
type Match struct {
	Num       int       `json:"num"`
	Date      string    `json:"date"`
	Time      string    `json:"time,omitempty"`
	TeamA     team.Team `json:"team1"`
	TeamB     team.Team `json:"team2"`
	ScoreA    int       `json:"score1"`
	ScoreB    int       `json:"score2"`
	HalftimeA *int      `json:"score1i"`
	HalftimeB *int      `json:"score2i"`
	GoalsA    []Goal    `json:"goals1"`
	GoalsB    []Goal    `json:"goals2"`
	Group     string    `json:"group,omitempty"`
	Knockout  bool      `json:"knockout,omitempty"`
	*ExtraScores
	Stadium     *Stadium `json:"stadium,omitempty"`
	City        string   `json:"city,omitempty"`
	Competition string   `json:"competition,omitempty"`
	Year        string   `json:"year,omitempty"`
}

type Round struct {
	Name    string  `json:"name"`
	Matches []Match `json:"matches"`
}

// Document is the worldcup.json layout.
type Document struct {
	Name   string  `json:"name"`
	Rounds []Round `json:"rounds"`
}

type Group struct {
	Name  string      `json:"name"`
	Teams []team.Team `json:"teams"`
}

// GroupsDocument is the worldcup.groups.json layout.
type GroupsDocument struct {
	Name   string  `json:"name"`
	Groups []Group `json:"groups"`
}

// Outcome is a match result from one team's perspective.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

// Points awards 3 for a win, 1 for a draw.
func (o Outcome) Points() int {
	switch o {
	case OutcomeWin:
		return 3
	case OutcomeDraw:
		return 1
	default:
		return 0
	}
}

func (m Match) Involves(code string) bool {
	return m.TeamA.Code == code || m.TeamB.Code == code
}

// Perspective returns goals for and against the given team and whether it was
// the home (team1) side. ok is false when the team did not play.
func (m Match) Perspective(code string) (goalsFor, goalsAgainst int, home, ok bool) {
	switch code {
	case m.TeamA.Code:
		return m.ScoreA, m.ScoreB, true, true
	case m.TeamB.Code:
		return m.ScoreB, m.ScoreA, false, true
	default:
		return 0, 0, false, false
	}
}

// Opponent returns the other side of the match.
func (m Match) Opponent(code string) team.Team {
	if m.TeamA.Code == code {
		return m.TeamB
	}
	return m.TeamA
}

func (m Match) OutcomeFor(code string) (Outcome, bool) {
	gf, ga, _, ok := m.Perspective(code)
	if !ok {
		return "", false
	}
	switch {
	case gf > ga:
		return OutcomeWin, true
	case gf < ga:
		return OutcomeLoss, true
	default:
		return OutcomeDraw, true
	}
}

// Winner reports the winner and loser codes; ok is false for a draw.
func (m Match) Winner() (winner, loser string, ok bool) {
	switch {
	case m.ScoreA > m.ScoreB:
		return m.TeamA.Code, m.TeamB.Code, true
	case m.ScoreB > m.ScoreA:
		return m.TeamB.Code, m.TeamA.Code, true
	default:
		return "", "", false
	}
}

// Key groups matches by tournament edition, e.g. "World Cup 1994".
func (m Match) Key() string {
	return m.Competition + " " + m.Year
}

// Matches returns every match in round order.
func (d Document) Matches() []Match {
	total := 0
	for _, round := range d.Rounds {
		total += len(round.Matches)
	}
	out := make([]Match, 0, total)
	for _, round := range d.Rounds {
		out = append(out, round.Matches...)
	}
	return out
}

// Flatten stamps every match with its competition and year.
func (d Document) Flatten(competition, year string) []Match {
	out := d.Matches()
	for i := range out {
		out[i].Competition = competition
		out[i].Year = year
	}
	return out
}

// Teams lists every distinct team seen in the document, keyed by code.
func (d Document) Teams() map[string]team.Team {
	out := make(map[string]team.Team)
	for _, match := range d.Matches() {
		for _, t := range []team.Team{match.TeamA, match.TeamB} {
			if t.Code == "" {
				continue
			}
			if _, ok := out[t.Code]; !ok {
				out[t.Code] = t.Ref()
			}
		}
	}
	return out
}

// SortChronological orders matches by year, date and match number. Ties keep
// their input order.
func SortChronological(matches []Match) {
	slices.SortStableFunc(matches, func(a, b Match) int {
		return cmp.Or(
			cmp.Compare(a.Year, b.Year),
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(a.Num, b.Num),
		)
	})
}
