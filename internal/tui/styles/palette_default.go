package styles

// DefaultTheme is the baseline palette.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Background:  "#101418",
		Panel:       "#171C22",
		Text:        "#E4E8EE",
		TextMuted:   "#8A96A6",
		Border:      "#2A3442",
		Accent:      "#4F8CF7",
		Focus:       "#7EA6FA",
		Placeholder: "#C792EA",
		Success:     "#3FB950",
		Warning:     "#D29922",
		Error:       "#F85149",
		Info:        "#58A6FF",
	},
}
