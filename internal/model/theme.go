package model

// Theme is the persisted appearance setting
type Theme string

const (
	ThemeLight  Theme = "Light"
	ThemeDark   Theme = "Dark"
	ThemeSystem Theme = "System"
)

// Valid reports whether t is one of the known themes
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// IsDark reports whether the theme resolves to a dark appearance. System
// resolves to dark; terminal emulators give no reliable appearance signal.
func (t Theme) IsDark() bool {
	return t == ThemeDark || t == ThemeSystem
}
