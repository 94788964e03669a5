package team

// Entry maps one lowercase lookup key to a canonical identity.
type Entry struct {
	Key  string
	Name string
	Code string
}

// Continuous nations share a code across renames; legally distinct successor or
// predecessor states always get their own code.
var defaultEntries = []Entry{
	// CAF
	{"algeria", "Algeria", "ALG"},
	{"angola", "Angola", "ANG"},
	{"cameroon", "Cameroon", "CMR"},
	{"congo", "Congo", "CGO"},
	{"republic of the congo", "Congo", "CGO"},
	{"dr congo", "DR Congo", "COD"},
	{"congo dr", "DR Congo", "COD"},
	{"democratic republic of congo", "DR Congo", "COD"},
	{"zaire", "DR Congo", "COD"},
	{"egypt", "Egypt", "EGY"},
	{"ghana", "Ghana", "GHA"},
	{"ivory coast", "Côte d'Ivoire", "CIV"},
	{"côte d'ivoire", "Côte d'Ivoire", "CIV"},
	{"cote d'ivoire", "Côte d'Ivoire", "CIV"},
	{"morocco", "Morocco", "MAR"},
	{"nigeria", "Nigeria", "NGA"},
	{"senegal", "Senegal", "SEN"},
	{"south africa", "South Africa", "RSA"},
	{"togo", "Togo", "TOG"},
	{"tunisia", "Tunisia", "TUN"},

	// AFC
	{"australia", "Australia", "AUS"},
	{"china", "China PR", "CHN"},
	{"china pr", "China PR", "CHN"},
	{"india", "India", "IND"},
	{"indonesia", "Indonesia", "IDN"},
	{"dutch east indies", "Indonesia", "IDN"},
	{"iran", "Iran", "IRN"},
	{"ir iran", "Iran", "IRN"},
	{"iraq", "Iraq", "IRQ"},
	{"israel", "Israel", "ISR"},
	{"japan", "Japan", "JPN"},
	{"north korea", "Korea DPR", "PRK"},
	{"korea dpr", "Korea DPR", "PRK"},
	{"south korea", "Korea Republic", "KOR"},
	{"korea republic", "Korea Republic", "KOR"},
	{"korea", "Korea Republic", "KOR"},
	{"kuwait", "Kuwait", "KUW"},
	{"qatar", "Qatar", "QAT"},
	{"saudi arabia", "Saudi Arabia", "KSA"},
	{"united arab emirates", "UAE", "UAE"},
	{"uae", "UAE", "UAE"},

	// UEFA
	{"albania", "Albania", "ALB"},
	{"austria", "Austria", "AUT"},
	{"belgium", "Belgium", "BEL"},
	{"bosnia-herzegovina", "Bosnia-Herzegovina", "BIH"},
	{"bosnia and herzegovina", "Bosnia-Herzegovina", "BIH"},
	{"bulgaria", "Bulgaria", "BUL"},
	{"croatia", "Croatia", "CRO"},
	{"czech republic", "Czech Republic", "CZE"},
	{"czechoslovakia", "Czechoslovakia", "TCH"},
	{"denmark", "Denmark", "DEN"},
	{"england", "England", "ENG"},
	{"france", "France", "FRA"},
	{"germany", "Germany", "GER"},
	{"west germany", "Germany", "GER"},
	{"east germany", "East Germany", "GDR"},
	{"greece", "Greece", "GRE"},
	{"hungary", "Hungary", "HUN"},
	{"iceland", "Iceland", "ISL"},
	{"ireland", "Republic of Ireland", "IRL"},
	{"republic of ireland", "Republic of Ireland", "IRL"},
	{"italy", "Italy", "ITA"},
	{"netherlands", "Netherlands", "NED"},
	{"holland", "Netherlands", "NED"},
	{"northern ireland", "Northern Ireland", "NIR"},
	{"norway", "Norway", "NOR"},
	{"poland", "Poland", "POL"},
	{"portugal", "Portugal", "POR"},
	{"romania", "Romania", "ROU"},
	{"russia", "Russia", "RUS"},
	{"scotland", "Scotland", "SCO"},
	{"serbia", "Serbia", "SRB"},
	{"serbia and montenegro", "Serbia and Montenegro", "SCG"},
	{"slovakia", "Slovakia", "SVK"},
	{"slovenia", "Slovenia", "SVN"},
	{"soviet union", "Soviet Union", "URS"},
	{"ussr", "Soviet Union", "URS"},
	{"spain", "Spain", "ESP"},
	{"sweden", "Sweden", "SWE"},
	{"switzerland", "Switzerland", "SUI"},
	{"turkey", "Turkey", "TUR"},
	{"ukraine", "Ukraine", "UKR"},
	{"wales", "Wales", "WAL"},
	{"yugoslavia", "Yugoslavia", "YUG"},

	// CONCACAF
	{"canada", "Canada", "CAN"},
	{"costa rica", "Costa Rica", "CRC"},
	{"cuba", "Cuba", "CUB"},
	{"el salvador", "El Salvador", "SLV"},
	{"haiti", "Haiti", "HAI"},
	{"honduras", "Honduras", "HON"},
	{"jamaica", "Jamaica", "JAM"},
	{"mexico", "Mexico", "MEX"},
	{"panama", "Panama", "PAN"},
	{"trinidad and tobago", "Trinidad and Tobago", "TRI"},
	{"united states", "United States", "USA"},
	{"usa", "United States", "USA"},
	{"us", "United States", "USA"},

	// CONMEBOL
	{"argentina", "Argentina", "ARG"},
	{"bolivia", "Bolivia", "BOL"},
	{"brazil", "Brazil", "BRA"},
	{"chile", "Chile", "CHI"},
	{"colombia", "Colombia", "COL"},
	{"ecuador", "Ecuador", "ECU"},
	{"paraguay", "Paraguay", "PAR"},
	{"peru", "Peru", "PER"},
	{"uruguay", "Uruguay", "URU"},
	{"venezuela", "Venezuela", "VEN"},

	// OFC
	{"new zealand", "New Zealand", "NZL"},
}

var lineages = []Lineage{
	{Label: "West Germany → Germany", Code: "GER", Status: StatusSameNation, Explanation: "Federal Republic of Germany (1949-1990) continued as unified Germany"},
	{Label: "Zaire → DR Congo", Code: "COD", Status: StatusSameNation, Explanation: "Renamed in 1997, same country"},
	{Label: "Holland → Netherlands", Code: "NED", Status: StatusSameNation, Explanation: "Informal name vs official name"},
	{Label: "Iran / IR Iran", Code: "IRN", Status: StatusSameNation, Explanation: "Different official names for the same country"},
	{Label: "Ivory Coast → Côte d'Ivoire", Code: "CIV", Status: StatusSameNation, Explanation: "English name vs French official name"},
	{Label: "Dutch East Indies → Indonesia", Code: "IDN", Status: StatusSameNation, Explanation: "Colonial name vs independent nation, same territory"},
	{Label: "East Germany (GDR)", Code: "GDR", Status: StatusDifferentState, Explanation: "Separate state (1949-1990), not unified with West Germany"},
	{Label: "Soviet Union (USSR)", Code: "URS", Status: StatusDifferentState, Explanation: "Multi-national state (1922-1991), not the same as Russia"},
	{Label: "Yugoslavia", Code: "YUG", Status: StatusDifferentState, Explanation: "Multi-national state (1918-1992), not the same as Serbia or Croatia"},
	{Label: "Serbia and Montenegro", Code: "SCG", Status: StatusDifferentState, Explanation: "Temporary union (1992-2006), separate from Yugoslavia and Serbia"},
	{Label: "Czechoslovakia", Code: "TCH", Status: StatusDifferentState, Explanation: "Split into Czech Republic and Slovakia in 1993"},
}

// DefaultEntries returns a copy of the built-in team database in lookup order.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

// Lineages lists the succession notes recorded for the given code.
func Lineages(code string) []Lineage {
	out := make([]Lineage, 0, 1)
	for _, item := range lineages {
		if item.Code == code {
			out = append(out, item)
		}
	}
	return out
}
