package team

import "fmt"

// UnknownCode marks a team that could not be resolved against the database.
const UnknownCode = "???"

// Team is a national team identity resolved from free-text historical names.
type Team struct {
	Name           string `json:"name"`
	Code           string `json:"code"`
	HistoricalName string `json:"historical_name,omitempty"`
}

// Ref strips the historical name, leaving the shape stored in tournament files.
func (t Team) Ref() Team {
	return Team{Name: t.Name, Code: t.Code}
}

func (t Team) Known() bool {
	return t.Code != "" && t.Code != UnknownCode
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.Code) != 3 {
		return fmt.Errorf("team code must be 3 characters, got %q", t.Code)
	}

	return nil
}

// Status classifies how a historical entity relates to its successors.
type Status string

const (
	StatusSameNation     Status = "SAME_NATION"
	StatusDifferentState Status = "DIFFERENT_STATE"
)

// Lineage documents one succession or separation decision in the database.
type Lineage struct {
	Label       string `json:"label"`
	Code        string `json:"code"`
	Status      Status `json:"status"`
	Explanation string `json:"explanation"`
}
