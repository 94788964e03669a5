package analytics

import (
	"slices"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

// CurrentStreak is the run of identical outcomes ending at the latest match.
// Type is empty when the team has no matches.
type CurrentStreak struct {
	Type  worldcup.Outcome `json:"type"`
	Count int              `json:"count"`
}

type LongestStreaks struct {
	Wins     int `json:"W"`
	Draws    int `json:"D"`
	Losses   int `json:"L"`
	Unbeaten int `json:"Unbeaten"`
}

// Transition holds P(next | prev) for one previous outcome.
type Transition struct {
	Win        float64 `json:"W"`
	Draw       float64 `json:"D"`
	Loss       float64 `json:"L"`
	SampleSize int     `json:"sample_size"`
}

type Transitions struct {
	AfterWin  Transition `json:"W"`
	AfterDraw Transition `json:"D"`
	AfterLoss Transition `json:"L"`
}

type Streaks struct {
	Current      CurrentStreak  `json:"current_streak"`
	Longest      LongestStreaks `json:"longest_streaks"`
	Transitions  Transitions    `json:"transitions"`
	TotalMatches int            `json:"total_matches"`
}

// ComputeStreaks derives streaks and first-order transition probabilities from
// the team's outcomes in chronological order.
func ComputeStreaks(code string, matches []worldcup.Match) Streaks {
	outcomes := Outcomes(code, matches)
	out := Streaks{TotalMatches: len(outcomes)}
	if len(outcomes) == 0 {
		return out
	}

	last := outcomes[len(outcomes)-1]
	out.Current.Type = last
	for i := len(outcomes) - 1; i >= 0 && outcomes[i] == last; i-- {
		out.Current.Count++
	}

	out.Longest.Wins = longestRun(outcomes, worldcup.OutcomeWin)
	out.Longest.Draws = longestRun(outcomes, worldcup.OutcomeDraw)
	out.Longest.Losses = longestRun(outcomes, worldcup.OutcomeLoss)
	out.Longest.Unbeaten = longestRun(outcomes, worldcup.OutcomeWin, worldcup.OutcomeDraw)

	counts := make(map[worldcup.Outcome]map[worldcup.Outcome]int, 3)
	for i := 0; i+1 < len(outcomes); i++ {
		prev, next := outcomes[i], outcomes[i+1]
		if counts[prev] == nil {
			counts[prev] = make(map[worldcup.Outcome]int, 3)
		}
		counts[prev][next]++
	}
	out.Transitions = Transitions{
		AfterWin:  transitionFrom(counts[worldcup.OutcomeWin]),
		AfterDraw: transitionFrom(counts[worldcup.OutcomeDraw]),
		AfterLoss: transitionFrom(counts[worldcup.OutcomeLoss]),
	}
	return out
}

// Outcomes lists the team's results ordered by (year, date, number).
func Outcomes(code string, matches []worldcup.Match) []worldcup.Outcome {
	played := teamMatches(code, matches)
	out := make([]worldcup.Outcome, 0, len(played))
	for _, m := range played {
		outcome, _ := m.OutcomeFor(code)
		out = append(out, outcome)
	}
	return out
}

func longestRun(outcomes []worldcup.Outcome, accept ...worldcup.Outcome) int {
	best, run := 0, 0
	for _, o := range outcomes {
		if slices.Contains(accept, o) {
			run++
			best = max(best, run)
			continue
		}
		run = 0
	}
	return best
}

func transitionFrom(next map[worldcup.Outcome]int) Transition {
	total := next[worldcup.OutcomeWin] + next[worldcup.OutcomeDraw] + next[worldcup.OutcomeLoss]
	if total == 0 {
		return Transition{}
	}
	return Transition{
		Win:        round2(float64(next[worldcup.OutcomeWin]) / float64(total)),
		Draw:       round2(float64(next[worldcup.OutcomeDraw]) / float64(total)),
		Loss:       round2(float64(next[worldcup.OutcomeLoss]) / float64(total)),
		SampleSize: total,
	}
}

// teamMatches returns a chronologically sorted copy of the team's matches.
func teamMatches(code string, matches []worldcup.Match) []worldcup.Match {
	out := make([]worldcup.Match, 0)
	for _, m := range matches {
		if m.Involves(code) {
			out = append(out, m)
		}
	}
	worldcup.SortChronological(out)
	return out
}
