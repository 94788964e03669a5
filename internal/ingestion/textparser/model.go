package textparser

// Stage selects the grammar a source file is read with.
type Stage string

const (
	// StageGroup reads cup.txt: group definitions, group headers and any rounds.
	StageGroup Stage = "group"
	// StageKnockout reads cup_finals.txt: every match is a knockout match.
	StageKnockout Stage = "knockout"
)

type Goal struct {
	Scorer  string
	Minute  int
	Offset  *int
	Penalty bool
	OwnGoal bool
}

// Score is the decoded score expression of a match line. A and B hold the
// deciding result.
type Score struct {
	A          int
	B          int
	HalftimeA  *int
	HalftimeB  *int
	ExtraTimeA *int
	ExtraTimeB *int
	PenaltyA   *int
	PenaltyB   *int
	AET        bool
}

type Match struct {
	Num      int
	Date     string
	Time     string
	TeamA    string
	TeamB    string
	Score    Score
	GoalsA   []Goal
	GoalsB   []Goal
	Stadium  string
	City     string
	Group    string
	Round    string
	Knockout bool
}

type Group struct {
	Name  string
	Teams []string
}

// Tournament is the intermediate result of reading one or more source files.
type Tournament struct {
	Name     string
	Year     int
	Location string
	Groups   []Group
	Matches  []Match
}

// Merge appends the knockout-stage matches to the group-stage tournament.
func Merge(group, knockout Tournament) Tournament {
	out := group
	if out.Name == "" {
		out.Name = knockout.Name
		out.Year = knockout.Year
	}
	if out.Location == "" {
		out.Location = knockout.Location
	}
	out.Groups = append([]Group(nil), group.Groups...)
	out.Matches = make([]Match, 0, len(group.Matches)+len(knockout.Matches))
	out.Matches = append(out.Matches, group.Matches...)
	out.Matches = append(out.Matches, knockout.Matches...)
	return out
}
