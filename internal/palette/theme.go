package palette

// Theme holds the colours renderers draw chrome with. It is passed
// explicitly; there is no package-level current theme.
type Theme struct {
	Background    string `toml:"background"`
	CardBG        string `toml:"card_bg"`
	Accent        string `toml:"accent"`
	AccentHover   string `toml:"accent_hover"`
	Text          string `toml:"text"`
	TextSecondary string `toml:"text_secondary"`
	Danger        string `toml:"danger"`
	Success       string `toml:"success"`
}

// DefaultTheme returns the dark theme.
func DefaultTheme() Theme {
	return Theme{
		Background:    "#1a1a2e",
		CardBG:        "#16213e",
		Accent:        "#0f3460",
		AccentHover:   "#0d7cff",
		Text:          "#eeeeee",
		TextSecondary: "#a8a8a8",
		Danger:        "#e94560",
		Success:       "#00ff88",
	}
}

// Merge returns t with every non-empty field of override applied.
func (t Theme) Merge(override Theme) Theme {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&t.Background, override.Background)
	set(&t.CardBG, override.CardBG)
	set(&t.Accent, override.Accent)
	set(&t.AccentHover, override.AccentHover)
	set(&t.Text, override.Text)
	set(&t.TextSecondary, override.TextSecondary)
	set(&t.Danger, override.Danger)
	set(&t.Success, override.Success)
	return t
}

// Validate checks that every colour parses as #rrggbb.
func (t Theme) Validate() error {
	for _, c := range []string{
		t.Background, t.CardBG, t.Accent, t.AccentHover,
		t.Text, t.TextSecondary, t.Danger, t.Success,
	} {
		if _, err := ParseHex(c); err != nil {
			return err
		}
	}
	return nil
}
