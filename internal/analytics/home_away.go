package analytics

import "github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"

// SideRecord aggregates the matches a team played on one side of the fixture.
type SideRecord struct {
	MatchesPlayed   int     `json:"matches_played"`
	Wins            int     `json:"wins"`
	Draws           int     `json:"draws"`
	Losses          int     `json:"losses"`
	GoalsFor        int     `json:"goals_for"`
	GoalsAgainst    int     `json:"goals_against"`
	WinPercentage   float64 `json:"win_percentage"`
	AvgGoalsFor     float64 `json:"avg_goals_for"`
	AvgGoalsAgainst float64 `json:"avg_goals_against"`
}

// HomeAway splits a team's record by fixture side: team1 is home, team2 away.
type HomeAway struct {
	Home SideRecord `json:"home"`
	Away SideRecord `json:"away"`
}

func ComputeHomeAway(code string, matches []worldcup.Match) HomeAway {
	var out HomeAway
	for _, m := range matches {
		gf, ga, home, ok := m.Perspective(code)
		if !ok {
			continue
		}
		side := &out.Away
		if home {
			side = &out.Home
		}

		side.MatchesPlayed++
		side.GoalsFor += gf
		side.GoalsAgainst += ga
		switch {
		case gf > ga:
			side.Wins++
		case gf < ga:
			side.Losses++
		default:
			side.Draws++
		}
	}

	for _, side := range []*SideRecord{&out.Home, &out.Away} {
		if side.MatchesPlayed == 0 {
			continue
		}
		played := float64(side.MatchesPlayed)
		side.WinPercentage = round1(float64(side.Wins) / played * 100)
		side.AvgGoalsFor = round2(float64(side.GoalsFor) / played)
		side.AvgGoalsAgainst = round2(float64(side.GoalsAgainst) / played)
	}
	return out
}
