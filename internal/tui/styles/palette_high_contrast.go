package styles

// HighContrastTheme favors visibility on low-contrast terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Background:  "#000000",
		Panel:       "#000000",
		Text:        "#FFFFFF",
		TextMuted:   "#D0D0D0",
		Border:      "#FFFFFF",
		Accent:      "#00B4FF",
		Focus:       "#FFE000",
		Placeholder: "#FF7AFF",
		Success:     "#00FF66",
		Warning:     "#FFB000",
		Error:       "#FF3B3B",
		Info:        "#7AD7FF",
	},
}
