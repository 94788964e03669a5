package textparser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const groupFixture = `
= World Cup 2022        # in Qatar

Group A  |  Qatar        Ecuador      Senegal      Netherlands
Group B  |  England      Iran         USA          Wales

## comment line
Group A
(1) Sun Nov/20 19:00      Qatar   0-2 (0-2)   Ecuador    @ Al Bayt Stadium, Al Khor
  [-; Enner Valencia 16' (pen.) 31']
(2) Mon Nov/21 19:00      Senegal   0-2 (0-0)   Netherlands   @ Al Thumama Stadium, Doha
  [-; Cody Gakpo 84'  Davy Klaassen 90+9']

Group B
(3) Mon Nov/21 16:00      England   6-2 (3-0)   Iran     @ Khalifa International Stadium, Al Rayyan
this line is noise and must be ignored
(4) Mon Nov/21 22:00      USA   1-1 (1-0)   Wales    @ Ahmad bin Ali Stadium

Round of 16
(49) Sat Dec/3 18:00      Netherlands   3-1 (2-0)   USA     @ Khalifa International Stadium, Al Rayyan
`

func TestParseGroupStage(t *testing.T) {
	t.Parallel()

	got := Parse(groupFixture)

	assert.Equal(t, "World Cup 2022", got.Name)
	assert.Equal(t, 2022, got.Year)
	assert.Equal(t, "Qatar", got.Location)

	require.Len(t, got.Groups, 2)
	assert.Equal(t, Group{Name: "Group A", Teams: []string{"Qatar", "Ecuador", "Senegal", "Netherlands"}}, got.Groups[0])

	require.Len(t, got.Matches, 5)

	first := got.Matches[0]
	assert.Equal(t, 1, first.Num)
	assert.Equal(t, "2022-11-20", first.Date)
	assert.Equal(t, "19:00", first.Time)
	assert.Equal(t, "Qatar", first.TeamA)
	assert.Equal(t, "Ecuador", first.TeamB)
	assert.Equal(t, 0, first.Score.A)
	assert.Equal(t, 2, first.Score.B)
	require.NotNil(t, first.Score.HalftimeB)
	assert.Equal(t, 2, *first.Score.HalftimeB)
	assert.Equal(t, "Al Bayt Stadium", first.Stadium)
	assert.Equal(t, "Al Khor", first.City)
	assert.Equal(t, "Group A", first.Group)
	assert.False(t, first.Knockout)
	assert.Empty(t, first.GoalsA)
	require.Len(t, first.GoalsB, 2)
	assert.Equal(t, Goal{Scorer: "Enner Valencia", Minute: 16, Penalty: true}, first.GoalsB[0])
	assert.Equal(t, Goal{Scorer: "Enner Valencia", Minute: 31}, first.GoalsB[1])

	second := got.Matches[1]
	require.Len(t, second.GoalsB, 2)
	assert.Equal(t, "Davy Klaassen", second.GoalsB[1].Scorer)
	require.NotNil(t, second.GoalsB[1].Offset)
	assert.Equal(t, 9, *second.GoalsB[1].Offset)

	assert.Equal(t, "Group B", got.Matches[2].Group)
	assert.Equal(t, "Ahmad bin Ali Stadium", got.Matches[3].Stadium)
	assert.Empty(t, got.Matches[3].City)

	knockout := got.Matches[4]
	assert.True(t, knockout.Knockout)
	assert.Equal(t, "Round of 16", knockout.Round)
	assert.Empty(t, knockout.Group)
}

func TestParseKnockoutForcesKnockout(t *testing.T) {
	t.Parallel()

	text := `= World Cup 1994

Quarter-finals
(1) 9 July   Netherlands   2-3 (0-0)   Brazil   @ Cotton Bowl, Dallas

(2) 10 July   Romania   2-2 pen. 5-4 a.e.t. (1-1)   Sweden
`
	got := ParseKnockout(text)

	require.Len(t, got.Matches, 2)
	for _, m := range got.Matches {
		assert.True(t, m.Knockout)
		assert.Empty(t, m.Group)
		assert.Equal(t, "Quarter-finals", m.Round)
	}
	assert.Equal(t, "1994-07-09", got.Matches[0].Date)
	assert.Empty(t, got.Matches[0].Time)
}

func TestParseScoreShapes(t *testing.T) {
	t.Parallel()

	got := ParseScore("3-2 pen. 0-0 a.e.t. (0-0)")
	assert.Equal(t, 3, got.A)
	assert.Equal(t, 2, got.B)
	assert.True(t, got.AET)
	require.NotNil(t, got.ExtraTimeA)
	assert.Equal(t, 0, *got.ExtraTimeA)
	assert.Equal(t, 0, *got.ExtraTimeB)
	require.NotNil(t, got.HalftimeA)
	assert.Equal(t, 0, *got.HalftimeA)
	assert.Equal(t, 0, *got.HalftimeB)
	assert.Equal(t, 3, *got.PenaltyA)
	assert.Equal(t, 2, *got.PenaltyB)

	got = ParseScore("1-1 a.e.t. (1-0)")
	assert.Equal(t, 1, got.A)
	assert.Equal(t, 1, got.B)
	assert.True(t, got.AET)
	assert.Equal(t, 1, *got.ExtraTimeA)
	assert.Nil(t, got.PenaltyA)
	assert.Equal(t, 1, *got.HalftimeA)
	assert.Equal(t, 0, *got.HalftimeB)

	got = ParseScore("4-1 (3-0)")
	assert.Equal(t, 4, got.A)
	assert.Equal(t, 1, got.B)
	assert.False(t, got.AET)
	assert.Nil(t, got.ExtraTimeA)
	assert.Equal(t, 3, *got.HalftimeA)

	got = ParseScore("2-1")
	assert.Equal(t, 2, got.A)
	assert.Equal(t, 1, got.B)
	assert.Nil(t, got.HalftimeA)

	got = ParseScore("2-1 a.e.t. (1-1, 0-1)")
	assert.Equal(t, 0, *got.HalftimeA)
	assert.Equal(t, 1, *got.HalftimeB)
}

func TestParseGoalsQualifiers(t *testing.T) {
	t.Parallel()

	a, b := ParseGoals("[Müller 10', Klose 45+2' (o.g.); -]")
	require.Len(t, a, 2)
	assert.Empty(t, b)
	assert.Equal(t, "Müller", a[0].Scorer)
	assert.True(t, a[1].OwnGoal)
	assert.False(t, a[1].Penalty)
	assert.Equal(t, 45, a[1].Minute)
	assert.Equal(t, 2, *a[1].Offset)

	a, b = ParseGoals("")
	assert.Empty(t, a)
	assert.Empty(t, b)
}

func TestParseDateForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		wantDate string
		wantTime string
	}{
		{in: "Sun Nov/20 19:00  Qatar 0-2 Ecuador", wantDate: "2022-11-20", wantTime: "19:00"},
		{in: "Fri Jun/9  Qatar 0-2 Ecuador", wantDate: "2022-06-09"},
		{in: "Jun/9 9.30  Qatar 0-2 Ecuador", wantDate: "2022-06-09", wantTime: "09:30"},
		{in: "18 June  Qatar 0-2 Ecuador", wantDate: "2022-06-18"},
		{in: "Qatar 0-2 Ecuador", wantDate: ""},
	}
	for _, tc := range tests {
		date, clock, rest := parseDate(tc.in, 2022)
		assert.Equal(t, tc.wantDate, date, tc.in)
		assert.Equal(t, tc.wantTime, clock, tc.in)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(rest), "Qatar"), tc.in)
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	t.Parallel()

	got := Parse("(x) not a match\n(7) 12 June  no score here\n[orphan goals 10']\n")
	assert.Empty(t, got.Matches)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestReadPropagatesReaderErrors(t *testing.T) {
	t.Parallel()

	_, err := Read(failingReader{}, StageGroup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestReadYearSeedsDatesUntilHeader(t *testing.T) {
	t.Parallel()

	finals := "Final\n(64) Sun Dec/18 18:00   Argentina   3-3 (2-0)   France   @ Lusail Stadium\n"

	got, err := ReadYear(strings.NewReader(finals), StageKnockout, 2022)
	require.NoError(t, err)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "2022-12-18", got.Matches[0].Date)

	got, err = ReadYear(strings.NewReader("= World Cup 2018\n"+finals), StageKnockout, 2022)
	require.NoError(t, err)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, 2018, got.Year)
	assert.Equal(t, "2018-12-18", got.Matches[0].Date)
}

func TestParseGroupsBeyondH(t *testing.T) {
	t.Parallel()

	got := Parse(`
= World Cup 2026

Group I  |  France   Senegal   Norway   Iraq
Group L  |  England  Croatia   Ghana    Panama

Group L
(22) Wed Jun/17 16:00   England   2-1 (1-0)   Croatia   @ AT&T Stadium, Arlington
`)
	require.Len(t, got.Groups, 2)
	assert.Equal(t, "Group I", got.Groups[0].Name)
	assert.Equal(t, "Group L", got.Groups[1].Name)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "Group L", got.Matches[0].Group)
}

func TestMerge(t *testing.T) {
	t.Parallel()

	group := Tournament{Name: "World Cup 1994", Year: 1994, Matches: []Match{{Num: 1}}}
	knockout := Tournament{Name: "World Cup 1994", Year: 1994, Matches: []Match{{Num: 37, Knockout: true}}}

	got := Merge(group, knockout)
	require.Len(t, got.Matches, 2)
	assert.Equal(t, 37, got.Matches[1].Num)
	assert.Len(t, group.Matches, 1)
}
