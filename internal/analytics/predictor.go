package analytics

import (
	"math"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

// Weights are fixed and sum to 1.
type Weights struct {
	HeadToHead float64 `json:"h2h_weight"`
	Momentum   float64 `json:"momentum_weight"`
	GoalPower  float64 `json:"goal_weight"`
	Streak     float64 `json:"streak_weight"`
}

var DefaultWeights = Weights{
	HeadToHead: 0.30,
	Momentum:   0.25,
	GoalPower:  0.25,
	Streak:     0.20,
}

// PredictionDetails exposes every sub-score in [0,1], rounded to 2 decimals.
type PredictionDetails struct {
	HeadToHeadA float64 `json:"h2h_score_a"`
	HeadToHeadB float64 `json:"h2h_score_b"`
	MomentumA   float64 `json:"momentum_score_a"`
	MomentumB   float64 `json:"momentum_score_b"`
	GoalPowerA  float64 `json:"goal_power_a"`
	GoalPowerB  float64 `json:"goal_power_b"`
	StreakA     float64 `json:"streak_score_a"`
	StreakB     float64 `json:"streak_score_b"`
}

type Prediction struct {
	TeamA        string            `json:"team_a"`
	TeamB        string            `json:"team_b"`
	ProbabilityA float64           `json:"probability_a"`
	ProbabilityB float64           `json:"probability_b"`
	Details      PredictionDetails `json:"details"`
	Factors      Weights           `json:"factors"`
}

type sideScores struct {
	h2h, momentum, goalPower, streak float64
}

func (s sideScores) weighted(w Weights) float64 {
	return s.h2h*w.HeadToHead + s.momentum*w.Momentum + s.goalPower*w.GoalPower + s.streak*w.Streak
}

// Predict estimates win probabilities for codeA against codeB. It is
// deterministic and the two probabilities sum to 100.
func Predict(codeA, codeB string, matches []worldcup.Match) Prediction {
	var a, b sideScores

	a.h2h, b.h2h = 0.5, 0.5
	if h2h := ComputeHeadToHead(codeA, codeB, matches); h2h.TotalMatches > 0 {
		total := float64(h2h.TotalMatches)
		a.h2h = (float64(h2h.WinsA) + float64(h2h.Draws)*0.5) / total
		b.h2h = (float64(h2h.WinsB) + float64(h2h.Draws)*0.5) / total
	}

	a.momentum = clamp01(ComputeMomentum(codeA, matches, DefaultMomentumSpan).Current / 3.0)
	b.momentum = clamp01(ComputeMomentum(codeB, matches, DefaultMomentumSpan).Current / 3.0)

	goalsA := ComputeGoalStats(codeA, matches).Global
	goalsB := ComputeGoalStats(codeB, matches).Global
	powerA := goalsA.AvgGoalsFor * (1 + goalsB.AvgGoalsAgainst/2)
	powerB := goalsB.AvgGoalsFor * (1 + goalsA.AvgGoalsAgainst/2)
	a.goalPower, b.goalPower = 0.5, 0.5
	if total := powerA + powerB; total > 0 {
		a.goalPower = powerA / total
		b.goalPower = powerB / total
	}

	a.streak = clamp01((streakValue(ComputeStreaks(codeA, matches).Current) + 5) / 10)
	b.streak = clamp01((streakValue(ComputeStreaks(codeB, matches).Current) + 5) / 10)

	out := Prediction{
		TeamA:        codeA,
		TeamB:        codeB,
		ProbabilityA: 50,
		ProbabilityB: 50,
		Details: PredictionDetails{
			HeadToHeadA: round2(a.h2h),
			HeadToHeadB: round2(b.h2h),
			MomentumA:   round2(a.momentum),
			MomentumB:   round2(b.momentum),
			GoalPowerA:  round2(a.goalPower),
			GoalPowerB:  round2(b.goalPower),
			StreakA:     round2(a.streak),
			StreakB:     round2(b.streak),
		},
		Factors: DefaultWeights,
	}

	scoreA, scoreB := a.weighted(DefaultWeights), b.weighted(DefaultWeights)
	if total := scoreA + scoreB; total > 0 {
		out.ProbabilityA = round1(scoreA / total * 100)
		out.ProbabilityB = round1(scoreB / total * 100)
	}
	return out
}

// streakValue maps the current streak onto a signed score: wins count fully,
// draws a fifth, losses negatively.
func streakValue(s CurrentStreak) float64 {
	switch s.Type {
	case worldcup.OutcomeWin:
		return float64(s.Count)
	case worldcup.OutcomeDraw:
		return 0.2 * float64(s.Count)
	case worldcup.OutcomeLoss:
		return -float64(s.Count)
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
