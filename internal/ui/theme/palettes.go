package theme

// Workshop is the default palette: warm accents on a neutral base.
var Workshop = Palette{
	PrimaryColor:             pair("#B4531F", "#F0883E"),
	SecondaryColor:           pair("#1F6FB4", "#58A6FF"),
	AccentColor:              pair("#8250DF", "#D2A8FF"),
	ErrorColor:               pair("#CF222E", "#FF7B72"),
	WarningColor:             pair("#9A6700", "#E3B341"),
	SuccessColor:             pair("#1A7F37", "#3FB950"),
	TextColor:                pair("#24292F", "#E6EDF3"),
	TextMutedColor:           pair("#6E7781", "#8B949E"),
	BackgroundColor:          pair("#FFFFFF", "#0D1117"),
	BackgroundSecondaryColor: pair("#F6F8FA", "#161B22"),
	BorderNormalColor:        pair("#8C959F", "#6E7681"),
	BorderDimColor:           pair("#D0D7DE", "#30363D"),
}

// Nord palette, https://www.nordtheme.com/docs/colors-and-palettes
var Nord = Palette{
	PrimaryColor:             pair("#5E81AC", "#88C0D0"),
	SecondaryColor:           pair("#81A1C1", "#81A1C1"),
	AccentColor:              pair("#8FBCBB", "#8FBCBB"),
	ErrorColor:               pair("#BF616A", "#BF616A"),
	WarningColor:             pair("#D08770", "#EBCB8B"),
	SuccessColor:             pair("#A3BE8C", "#A3BE8C"),
	TextColor:                pair("#2E3440", "#ECEFF4"),
	TextMutedColor:           pair("#4C566A", "#D8DEE9"),
	BackgroundColor:          pair("#ECEFF4", "#2E3440"),
	BackgroundSecondaryColor: pair("#E5E9F0", "#3B4252"),
	BorderNormalColor:        pair("#4C566A", "#4C566A"),
	BorderDimColor:           pair("#D8DEE9", "#434C5E"),
}

// Dracula palette, https://draculatheme.com/contribute
var Dracula = Palette{
	PrimaryColor:             pair("#7C3AED", "#BD93F9"),
	SecondaryColor:           pair("#0E7490", "#8BE9FD"),
	AccentColor:              pair("#DB2777", "#FF79C6"),
	ErrorColor:               pair("#DC2626", "#FF5555"),
	WarningColor:             pair("#D97706", "#FFB86C"),
	SuccessColor:             pair("#16A34A", "#50FA7B"),
	TextColor:                pair("#282A36", "#F8F8F2"),
	TextMutedColor:           pair("#6272A4", "#6272A4"),
	BackgroundColor:          pair("#F8F8F2", "#282A36"),
	BackgroundSecondaryColor: pair("#EDEDE6", "#343746"),
	BorderNormalColor:        pair("#6272A4", "#6272A4"),
	BorderDimColor:           pair("#D6D6CF", "#44475A"),
}

func init() {
	RegisterTheme(DefaultName, Workshop)
	RegisterTheme("nord", Nord)
	RegisterTheme("dracula", Dracula)
}
