package analytics

import (
	"cmp"
	"slices"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

// HeadToHead sums every meeting of two teams from the first team's side.
type HeadToHead struct {
	TotalMatches  int              `json:"total_matches"`
	WinsA         int              `json:"wins_a"`
	WinsB         int              `json:"wins_b"`
	Draws         int              `json:"draws"`
	GoalsA        int              `json:"goals_a"`
	GoalsB        int              `json:"goals_b"`
	RecentMatches []worldcup.Match `json:"recent_matches"`
}

// ComputeHeadToHead collects meetings in either fixture order. Matches are
// returned as recorded, newest edition first.
func ComputeHeadToHead(codeA, codeB string, matches []worldcup.Match) HeadToHead {
	out := HeadToHead{RecentMatches: make([]worldcup.Match, 0)}
	for _, m := range matches {
		if !meets(m, codeA, codeB) {
			continue
		}
		out.RecentMatches = append(out.RecentMatches, m)
		out.TotalMatches++

		goalsA, goalsB, _, _ := m.Perspective(codeA)
		out.GoalsA += goalsA
		out.GoalsB += goalsB
		switch {
		case goalsA > goalsB:
			out.WinsA++
		case goalsB > goalsA:
			out.WinsB++
		default:
			out.Draws++
		}
	}

	slices.SortStableFunc(out.RecentMatches, func(a, b worldcup.Match) int {
		return cmp.Compare(b.Year, a.Year)
	})
	return out
}

func meets(m worldcup.Match, codeA, codeB string) bool {
	return (m.TeamA.Code == codeA && m.TeamB.Code == codeB) ||
		(m.TeamA.Code == codeB && m.TeamB.Code == codeA)
}
