package analytics

import "github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"

// IndirectWin is a second-order win: the team beat Intermediate, which beat
// IndirectVictim.
type IndirectWin struct {
	IntermediateTeam   string `json:"intermediate_team"`
	IndirectVictim     string `json:"indirect_victim"`
	IntermediateCode   string `json:"intermediate_code"`
	IndirectVictimCode string `json:"indirect_victim_code"`
}

type Dominance struct {
	IndirectWins      []IndirectWin `json:"indirect_wins"`
	TotalIndirectWins int           `json:"total_indirect_wins"`
}

// ComputeDominance walks the winner-to-loser graph two steps from code. Each
// (intermediate, victim) pair is reported once and the team itself is never
// its own indirect victim.
func ComputeDominance(code string, matches []worldcup.Match) Dominance {
	names := make(map[string]string)
	beat := make(map[string][]string)
	for _, m := range matches {
		names[m.TeamA.Code] = m.TeamA.Name
		names[m.TeamB.Code] = m.TeamB.Name
		if winner, loser, ok := m.Winner(); ok {
			beat[winner] = append(beat[winner], loser)
		}
	}

	out := Dominance{IndirectWins: make([]IndirectWin, 0)}
	seen := make(map[[2]string]struct{})
	for _, intermediate := range beat[code] {
		for _, victim := range beat[intermediate] {
			if victim == code {
				continue
			}
			pair := [2]string{intermediate, victim}
			if _, dup := seen[pair]; dup {
				continue
			}
			seen[pair] = struct{}{}
			out.IndirectWins = append(out.IndirectWins, IndirectWin{
				IntermediateTeam:   nameOr(names, intermediate),
				IndirectVictim:     nameOr(names, victim),
				IntermediateCode:   intermediate,
				IndirectVictimCode: victim,
			})
		}
	}
	out.TotalIndirectWins = len(out.IndirectWins)
	return out
}

func nameOr(names map[string]string, code string) string {
	if name := names[code]; name != "" {
		return name
	}
	return code
}
