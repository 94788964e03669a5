package analytics

import (
	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

const (
	DefaultMomentumSpan = 5
	momentumHistorySize = 10
)

// MomentumPoint is one match in the momentum series.
type MomentumPoint struct {
	Opponent    team.Team        `json:"opponent"`
	Result      worldcup.Outcome `json:"result"`
	Points      int              `json:"points"`
	Date        string           `json:"date"`
	Year        string           `json:"year"`
	Competition string           `json:"competition"`
	Momentum    float64          `json:"momentum_score"`
}

type Momentum struct {
	Current float64         `json:"current_momentum"`
	Span    int             `json:"span"`
	History []MomentumPoint `json:"history"`
}

// ComputeMomentum is an exponential moving average of match points with
// k = 2/(span+1), seeded with the first match's points. Only the latest ten
// points are returned. A span below 1 uses the default.
func ComputeMomentum(code string, matches []worldcup.Match, span int) Momentum {
	if span < 1 {
		span = DefaultMomentumSpan
	}
	out := Momentum{Span: span, History: make([]MomentumPoint, 0)}

	played := teamMatches(code, matches)
	if len(played) == 0 {
		return out
	}

	k := 2 / (float64(span) + 1)
	points := make([]MomentumPoint, 0, len(played))
	var ema float64
	for i, m := range played {
		outcome, _ := m.OutcomeFor(code)
		p := float64(outcome.Points())
		if i == 0 {
			ema = p
		} else {
			ema = p*k + ema*(1-k)
		}
		points = append(points, MomentumPoint{
			Opponent:    m.Opponent(code),
			Result:      outcome,
			Points:      outcome.Points(),
			Date:        m.Date,
			Year:        m.Year,
			Competition: m.Competition,
			Momentum:    round2(ema),
		})
	}

	out.Current = points[len(points)-1].Momentum
	out.History = points[max(0, len(points)-momentumHistorySize):]
	return out
}
