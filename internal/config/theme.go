package config

// Theme defines all configurable color values
type Theme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for selections, titles, highlights)
	Accent string `yaml:"accent"`

	// UI element colors
	ColumnBorder   string `yaml:"column_border"`
	SelectedBorder string `yaml:"selected_border"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	// Notification colors
	InfoFg  string `yaml:"info_fg"`
	ErrorFg string `yaml:"error_fg"`

	// Column header colors, one per status
	Pending    string `yaml:"pending"`
	InProgress string `yaml:"in_progress"`
	Completed  string `yaml:"completed"`
	Failed     string `yaml:"failed"`
	Hold       string `yaml:"hold"`
}

// DefaultTheme is the purple theme
func DefaultTheme() Theme {
	return Theme{
		Preset:         "default",
		Accent:         "#874BFD",
		ColumnBorder:   "#5F87D7",
		SelectedBorder: "#D75FD7",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		InfoFg:         "#00AFFF",
		ErrorFg:        "#FF5F5F",
		Pending:        "#AFAFAF",
		InProgress:     "#5F87D7",
		Completed:      "#5FD75F",
		Failed:         "#FF5F5F",
		Hold:           "#FFD700",
	}
}

// MonochromeTheme is a black and white theme
func MonochromeTheme() Theme {
	return Theme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		ColumnBorder:   "#808080",
		SelectedBorder: "#FFFFFF",
		Title:          "#FFFFFF",
		Subtle:         "#808080",
		Normal:         "#D0D0D0",
		InfoFg:         "#FFFFFF",
		ErrorFg:        "#FFFFFF",
		Pending:        "#D0D0D0",
		InProgress:     "#D0D0D0",
		Completed:      "#D0D0D0",
		Failed:         "#D0D0D0",
		Hold:           "#D0D0D0",
	}
}

// presetTheme returns a preset by name, falling back to the default
func presetTheme(name string) Theme {
	if name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// fields lists every color slot, used for defaulting and merging
func (t *Theme) fields() []*string {
	return []*string{
		&t.Accent, &t.ColumnBorder, &t.SelectedBorder,
		&t.Title, &t.Subtle, &t.Normal,
		&t.InfoFg, &t.ErrorFg,
		&t.Pending, &t.InProgress, &t.Completed, &t.Failed, &t.Hold,
	}
}

// ApplyDefaults fills in missing colors from the selected preset
func (t *Theme) ApplyDefaults() {
	preset := presetTheme(t.Preset)
	if t.Preset == "" {
		t.Preset = preset.Preset
	}
	base := preset.fields()
	for i, field := range t.fields() {
		if *field == "" {
			*field = *base[i]
		}
	}
}

// MergeFrom copies every color set in other over t
func (t *Theme) MergeFrom(other Theme) {
	if other.Preset != "" {
		t.Preset = other.Preset
	}
	src := other.fields()
	for i, field := range t.fields() {
		if *src[i] != "" {
			*field = *src[i]
		}
	}
}
