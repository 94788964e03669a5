package analytics

import (
	"math"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

// GoalTotals is a goals-for/against aggregate with derived averages.
type GoalTotals struct {
	GoalsFor        int     `json:"goals_for"`
	GoalsAgainst    int     `json:"goals_against"`
	MatchesPlayed   int     `json:"matches_played"`
	AvgGoalsFor     float64 `json:"avg_goals_for"`
	AvgGoalsAgainst float64 `json:"avg_goals_against"`
	GoalDifference  int     `json:"goal_difference"`
}

func (t *GoalTotals) add(goalsFor, goalsAgainst int) {
	t.GoalsFor += goalsFor
	t.GoalsAgainst += goalsAgainst
	t.MatchesPlayed++
}

func (t *GoalTotals) finish() {
	if t.MatchesPlayed == 0 {
		return
	}
	t.AvgGoalsFor = round2(float64(t.GoalsFor) / float64(t.MatchesPlayed))
	t.AvgGoalsAgainst = round2(float64(t.GoalsAgainst) / float64(t.MatchesPlayed))
	t.GoalDifference = t.GoalsFor - t.GoalsAgainst
}

// GoalStats holds a team's goal totals overall and per tournament edition.
type GoalStats struct {
	Global        GoalTotals            `json:"global"`
	ByCompetition map[string]GoalTotals `json:"by_competition"`
}

// ComputeGoalStats aggregates goals for code. Editions are keyed by
// "{competition} {year}".
func ComputeGoalStats(code string, matches []worldcup.Match) GoalStats {
	out := GoalStats{ByCompetition: make(map[string]GoalTotals)}
	for _, m := range matches {
		gf, ga, _, ok := m.Perspective(code)
		if !ok {
			continue
		}
		out.Global.add(gf, ga)

		edition := out.ByCompetition[m.Key()]
		edition.add(gf, ga)
		out.ByCompetition[m.Key()] = edition
	}

	out.Global.finish()
	for key, edition := range out.ByCompetition {
		edition.finish()
		out.ByCompetition[key] = edition
	}
	return out
}

// GoalPercentage reports goals scored per match.
type GoalPercentage struct {
	Available     bool    `json:"available"`
	GoalsPerMatch float64 `json:"goals_per_match"`
	TotalGoals    int     `json:"total_goals"`
	MatchesPlayed int     `json:"matches_played"`
	Message       string  `json:"message"`
}

func ComputeGoalPercentage(code string, matches []worldcup.Match) GoalPercentage {
	out := GoalPercentage{Available: true, Message: "Computed from the available match history."}
	for _, m := range matches {
		gf, _, _, ok := m.Perspective(code)
		if !ok {
			continue
		}
		out.TotalGoals += gf
		out.MatchesPlayed++
	}
	if out.MatchesPlayed > 0 {
		out.GoalsPerMatch = round2(float64(out.TotalGoals) / float64(out.MatchesPlayed))
	}
	return out
}

// Record is a team's all-time W/D/L record.
type Record struct {
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	TotalMatches   int     `json:"total_matches"`
	WinPercentage  float64 `json:"win_percentage"`
	DrawPercentage float64 `json:"draw_percentage"`
	LossPercentage float64 `json:"loss_percentage"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
}

func ComputeRecord(code string, matches []worldcup.Match) Record {
	var out Record
	for _, m := range matches {
		outcome, ok := m.OutcomeFor(code)
		if !ok {
			continue
		}
		gf, ga, _, _ := m.Perspective(code)
		out.GoalsFor += gf
		out.GoalsAgainst += ga
		out.TotalMatches++
		switch outcome {
		case worldcup.OutcomeWin:
			out.Wins++
		case worldcup.OutcomeDraw:
			out.Draws++
		default:
			out.Losses++
		}
	}
	if out.TotalMatches > 0 {
		total := float64(out.TotalMatches)
		out.WinPercentage = round1(float64(out.Wins) / total * 100)
		out.DrawPercentage = round1(float64(out.Draws) / total * 100)
		out.LossPercentage = round1(float64(out.Losses) / total * 100)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
