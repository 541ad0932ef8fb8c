package md

// Theme is a Slidev theme offered by the converter.
type Theme struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

type Transition struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var Themes = []Theme{
	{Value: "seriph", Label: "Seriph", Description: "Serif font theme"},
	{Value: "default", Label: "Default", Description: "Minimalist theme"},
	{Value: "apple-basic", Label: "Apple Basic", Description: "Apple-style"},
	{Value: "shibainu", Label: "Shibainu", Description: "Cute dog theme"},
	{Value: "unicorn", Label: "Unicorn", Description: "Colorful theme"},
}

var Transitions = []Transition{
	{Value: "slide-left", Label: "Slide Left"},
	{Value: "slide-right", Label: "Slide Right"},
	{Value: "slide-up", Label: "Slide Up"},
	{Value: "slide-down", Label: "Slide Down"},
	{Value: "fade", Label: "Fade"},
	{Value: "view-transition", Label: "View Transition"},
}

// LookupTheme reports whether name is a theme in Themes.
func LookupTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Value == name {
			return t, true
		}
	}
	return Theme{}, false
}

// LookupTransition reports whether name is a transition in Transitions.
func LookupTransition(name string) (Transition, bool) {
	for _, t := range Transitions {
		if t.Value == name {
			return t, true
		}
	}
	return Transition{}, false
}
