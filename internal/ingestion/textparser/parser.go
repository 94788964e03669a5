package textparser

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

const maxLineBytes = 1 << 20

var (
	tournamentHeaderPattern = regexp.MustCompile(`(?i)^=\s*World\s+Cup\s+(\d{4})\s*(?:#\s*(?:in\s+)?(.+))?$`)
	groupDefinitionPattern  = regexp.MustCompile(`(?i)^Group\s+([A-L1-4])\s*\|\s*(.+)$`)
	groupHeaderPattern      = regexp.MustCompile(`(?i)^Group\s+([A-L1-4])\s*$`)
	roundHeaderPattern      = regexp.MustCompile(`(?i)^(Round\s+of\s+\d+|Quarter-finals?|Semi-finals?|Third[- ]place\s+match|Match\s+for\s+third\s+place|Final|Final\s+Round|First\s+round|Matchday\s+\d+)\s*(?:\|.*)?$`)
	goalsLinePattern        = regexp.MustCompile(`^\s*\[(.+)\]\s*$`)
	matchNumberPattern      = regexp.MustCompile(`^\((\d+)\)\s+`)

	slashDatePattern    = regexp.MustCompile(`^(?:[A-Za-z]{3}\s+)?([A-Za-z]+)/(\d{1,2})(?:\s+(\d{1,2})[:.](\d{2})(?:\s+UTC[+-]?\d*)?)?\s+`)
	dayMonthDatePattern = regexp.MustCompile(`^(\d{1,2})\s+([A-Za-z]+)(?:\s+(\d{1,2})[:.](\d{2}))?\s+`)

	matchScorePattern = regexp.MustCompile(`(\d+)\s*-\s*(\d+)(?:\s*pen\.?)?(?:\s*\d+\s*-\s*\d+)?(?:\s*a\.e\.t\.?)?(?:\s*\(\d+\s*-\s*\d+(?:,\s*\d+\s*-\s*\d+)?\))?`)
	columnPattern     = regexp.MustCompile(`\s{2,}`)
	spacePattern      = regexp.MustCompile(`\s+`)
)

var months = map[string]int{
	"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
	"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
}

// Parse reads a group-stage source (cup.txt). Lines that match no known shape
// are skipped.
func Parse(text string) Tournament {
	out, _ := Read(strings.NewReader(text), StageGroup)
	return out
}

// ParseKnockout reads a knockout-stage source (cup_finals.txt). Every match is
// marked knockout and no group is attached.
func ParseKnockout(text string) Tournament {
	out, _ := Read(strings.NewReader(text), StageKnockout)
	return out
}

// Read scans a source line by line. It only fails when the reader does.
func Read(r io.Reader, stage Stage) (Tournament, error) {
	return ReadYear(r, stage, 0)
}

// ReadYear is Read with the edition year known up front. Dates are resolved
// against year until a tournament header names another one.
func ReadYear(r io.Reader, stage Stage, year int) (Tournament, error) {
	p := &parser{stage: stage, last: -1}
	p.tournament.Year = year

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		p.consume(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Tournament{}, crerr.Wrapf(err, "scan %s source", stage)
	}

	return p.tournament, nil
}

type parser struct {
	stage      Stage
	tournament Tournament
	group      string
	round      string
	last       int
}

func (p *parser) consume(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return
	}

	if m := tournamentHeaderPattern.FindStringSubmatch(line); m != nil {
		p.tournament.Year, _ = strconv.Atoi(m[1])
		p.tournament.Name = "World Cup " + m[1]
		p.tournament.Location = strings.TrimSpace(m[2])
		return
	}

	if p.stage == StageGroup {
		if m := groupDefinitionPattern.FindStringSubmatch(line); m != nil {
			p.tournament.Groups = append(p.tournament.Groups, Group{
				Name:  groupName(m[1]),
				Teams: splitColumns(m[2]),
			})
			return
		}
		if m := groupHeaderPattern.FindStringSubmatch(line); m != nil {
			p.group = groupName(m[1])
			p.round = ""
			return
		}
	}

	if m := roundHeaderPattern.FindStringSubmatch(line); m != nil {
		p.round = spacePattern.ReplaceAllString(m[1], " ")
		if worldcup.IsKnockoutRound(p.round) {
			p.group = ""
		}
		return
	}

	if strings.HasPrefix(line, "[") {
		if m := goalsLinePattern.FindStringSubmatch(line); m != nil && p.last >= 0 {
			match := &p.tournament.Matches[p.last]
			match.GoalsA, match.GoalsB = ParseGoals(m[1])
		}
		return
	}

	if !strings.HasPrefix(line, "(") {
		return
	}
	match, ok := parseMatchLine(line, p.tournament.Year)
	if !ok {
		return
	}
	match.Round = p.round
	match.Knockout = p.stage == StageKnockout || worldcup.IsKnockoutRound(p.round)
	if !match.Knockout {
		match.Group = p.group
	}
	p.tournament.Matches = append(p.tournament.Matches, match)
	p.last = len(p.tournament.Matches) - 1
}

func parseMatchLine(line string, year int) (Match, bool) {
	loc := matchNumberPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	num := atoi(line[loc[2]:loc[3]])

	date, clock, rest := parseDate(line[loc[1]:], year)

	rest, venue, _ := strings.Cut(rest, "@")
	rest = strings.TrimSpace(rest)

	scoreLoc := matchScorePattern.FindStringIndex(rest)
	if scoreLoc == nil {
		return Match{}, false
	}
	teamA := collapse(rest[:scoreLoc[0]])
	teamB := collapse(rest[scoreLoc[1]:])
	if teamA == "" || teamB == "" {
		return Match{}, false
	}

	out := Match{
		Num:   num,
		Date:  date,
		Time:  clock,
		TeamA: teamA,
		TeamB: teamB,
		Score: ParseScore(rest[scoreLoc[0]:scoreLoc[1]]),
	}
	out.Stadium, out.City = parseVenue(venue)

	return out, true
}

// parseDate consumes a leading "Sun Nov/20 19:00", "Jun/9" or "18 June". An
// unknown month leaves the text untouched and the date empty.
func parseDate(text string, year int) (date, clock, rest string) {
	if m := slashDatePattern.FindStringSubmatchIndex(text); m != nil {
		month, ok := monthNumber(text[m[2]:m[3]])
		if ok {
			date = formatDate(year, month, atoi(text[m[4]:m[5]]))
			if m[6] >= 0 {
				clock = formatClock(text[m[6]:m[7]], text[m[8]:m[9]])
			}
			return date, clock, text[m[1]:]
		}
	}

	if m := dayMonthDatePattern.FindStringSubmatchIndex(text); m != nil {
		month, ok := monthNumber(text[m[4]:m[5]])
		if ok {
			date = formatDate(year, month, atoi(text[m[2]:m[3]]))
			if m[6] >= 0 {
				clock = formatClock(text[m[6]:m[7]], text[m[8]:m[9]])
			}
			return date, clock, text[m[1]:]
		}
	}

	return "", "", text
}

func monthNumber(name string) (int, bool) {
	lower := strings.ToLower(name)
	if len(lower) < 3 {
		return 0, false
	}
	month, ok := months[lower[:3]]
	return month, ok
}

func formatDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func formatClock(hour, minute string) string {
	return fmt.Sprintf("%02d:%s", atoi(hour), minute)
}

// parseVenue splits "Stadium Name, City" on the last comma.
func parseVenue(venue string) (stadium, city string) {
	venue = strings.TrimSpace(venue)
	if venue == "" {
		return "", ""
	}
	if i := strings.LastIndex(venue, ","); i >= 0 {
		return strings.TrimSpace(venue[:i]), strings.TrimSpace(venue[i+1:])
	}
	return venue, ""
}

func splitColumns(s string) []string {
	parts := columnPattern.Split(strings.TrimSpace(s), -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func groupName(letter string) string {
	return "Group " + strings.ToUpper(letter)
}

func collapse(s string) string {
	return spacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}
