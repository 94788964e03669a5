package worldcup

import (
	"regexp"
	"strings"
)

const (
	RoundOf16     = "Round of 16"
	QuarterFinals = "Quarter-finals"
	SemiFinals    = "Semi-finals"
	ThirdPlace    = "Third-place match"
	Final         = "Final"
)

// KnockoutOrder is the bracket order knockout rounds are emitted in.
var KnockoutOrder = []string{RoundOf16, QuarterFinals, SemiFinals, ThirdPlace, Final}

var knockoutRoundPattern = regexp.MustCompile(
	`(?i)^(round\s+of\s+\d+|quarter-finals?|semi-finals?|third[- ]place\s+match|match\s+for\s+third\s+place|final)$`,
)

// IsKnockoutRound reports whether a round header governs knockout matches.
// Group-stage headers such as "Matchday 2", "First round" or "Final Round"
// are not knockout rounds.
func IsKnockoutRound(name string) bool {
	return knockoutRoundPattern.MatchString(strings.TrimSpace(name))
}

// NormalizeRoundName maps header spellings onto the canonical bracket names.
// Unrecognized names are returned trimmed.
func NormalizeRoundName(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "round of 16"), strings.Contains(lower, "round of sixteen"):
		return RoundOf16
	case strings.Contains(lower, "quarter"):
		return QuarterFinals
	case strings.Contains(lower, "semi"):
		return SemiFinals
	case strings.Contains(lower, "third"):
		return ThirdPlace
	case lower == "final":
		return Final
	case trimmed == "":
		return "Unknown"
	default:
		return trimmed
	}
}

// IsKnockoutName reports whether a converted round name belongs to the knockout
// stage. Used when re-validating documents read back from disk.
func IsKnockoutName(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "matchday") || strings.Contains(lower, "group") {
		return false
	}
	for _, keyword := range []string{"round of", "quarter", "semi", "third place", "third-place", "knockout"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return lower == "final"
}
