package textparser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	penaltyPrefixPattern = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)\s*pen\.?`)
	scorePairPattern     = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	halftimePattern      = regexp.MustCompile(`\((\d+)\s*-\s*(\d+)(?:,\s*(\d+)\s*-\s*(\d+))?\)\s*$`)

	goalTokenPattern = regexp.MustCompile(`(\d+)(?:\+(\d+))?['’′](?:\s*\((pen\.?|o\.\s*g\.?)\))?`)
)

// ParseScore decodes a score expression:
//
//	2-1
//	4-1 (3-0)
//	1-1 a.e.t. (1-0)
//	3-2 pen. 0-0 a.e.t. (0-0)
//
// After a shootout the shootout score becomes the result and the first
// remaining pair is kept as the extra-time score.
func ParseScore(text string) Score {
	var out Score

	text = strings.TrimSpace(text)
	if loc := penaltyPrefixPattern.FindStringSubmatchIndex(text); loc != nil {
		out.PenaltyA = intPtr(atoi(text[loc[2]:loc[3]]))
		out.PenaltyB = intPtr(atoi(text[loc[4]:loc[5]]))
		text = strings.TrimSpace(text[loc[1]:])
	}
	out.AET = strings.Contains(strings.ToLower(text), "a.e.t")

	pairs := scorePairPattern.FindAllStringSubmatch(text, -1)
	if len(pairs) == 0 {
		if out.PenaltyA != nil {
			out.A, out.B = *out.PenaltyA, *out.PenaltyB
		}
		return out
	}

	first, second := atoi(pairs[0][1]), atoi(pairs[0][2])
	switch {
	case out.PenaltyA != nil:
		out.ExtraTimeA, out.ExtraTimeB = intPtr(first), intPtr(second)
		out.A, out.B = *out.PenaltyA, *out.PenaltyB
	case out.AET:
		out.A, out.B = first, second
		out.ExtraTimeA, out.ExtraTimeB = intPtr(first), intPtr(second)
	default:
		out.A, out.B = first, second
	}

	// "(1-1, 0-1)" lists the 90 minute score before the halftime score.
	if m := halftimePattern.FindStringSubmatch(text); m != nil {
		if m[3] != "" {
			out.HalftimeA, out.HalftimeB = intPtr(atoi(m[3])), intPtr(atoi(m[4]))
		} else {
			out.HalftimeA, out.HalftimeB = intPtr(atoi(m[1])), intPtr(atoi(m[2]))
		}
	}

	return out
}

// ParseGoals splits a goals annotation "A-goals; B-goals" into both sides.
// Surrounding brackets are optional.
func ParseGoals(text string) (goalsA, goalsB []Goal) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "[")
	text = strings.TrimSuffix(text, "]")

	parts := strings.SplitN(text, ";", 2)
	goalsA = parseTeamGoals(parts[0])
	if len(parts) > 1 {
		goalsB = parseTeamGoals(parts[1])
	}
	return goalsA, goalsB
}

// parseTeamGoals reads "Name 12' 45+1' (pen.), Other 80'". Minute tokens with
// no name before them belong to the previous scorer.
func parseTeamGoals(text string) []Goal {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return nil
	}

	tokens := goalTokenPattern.FindAllStringSubmatchIndex(text, -1)
	out := make([]Goal, 0, len(tokens))
	scorer := ""
	prev := 0
	for _, loc := range tokens {
		if name := strings.Trim(text[prev:loc[0]], " ,\t"); name != "" {
			scorer = name
		}
		prev = loc[1]
		if scorer == "" {
			continue
		}

		goal := Goal{Scorer: scorer, Minute: atoi(text[loc[2]:loc[3]])}
		if loc[4] >= 0 {
			goal.Offset = intPtr(atoi(text[loc[4]:loc[5]]))
		}
		if loc[6] >= 0 {
			modifier := strings.ToLower(text[loc[6]:loc[7]])
			goal.Penalty = strings.HasPrefix(modifier, "pen")
			goal.OwnGoal = strings.HasPrefix(modifier, "o")
		}
		out = append(out, goal)
	}

	return out
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func intPtr(v int) *int {
	return &v
}
