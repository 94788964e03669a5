package analytics

import "github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"

// Unavailable is returned for facets the dataset cannot support.
type Unavailable struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// ComputeEffectiveness needs shots on target, which no source file records.
func ComputeEffectiveness(string, []worldcup.Match) Unavailable {
	return Unavailable{Message: "Data not available: shots on target are not recorded in the dataset."}
}

// ComputePossession needs attacking-third possession, which no source file
// records.
func ComputePossession(string, []worldcup.Match) Unavailable {
	return Unavailable{Message: "Data not available: attacking-third possession is not recorded in the dataset."}
}
