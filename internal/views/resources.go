package views

// CrisisLine is an immediate support contact
type CrisisLine struct {
	Name    string
	Contact string
}

// ResourcePage is the static support information page
type ResourcePage struct {
	CrisisNote  string
	CrisisLines []CrisisLine
	Articles    []string
}

// Resources returns the support information shown to every user
func Resources() ResourcePage {
	return ResourcePage{
		CrisisNote: "If you're experiencing a mental health emergency, please contact your local crisis line immediately.",
		CrisisLines: []CrisisLine{
			{Name: "988 Suicide & Crisis Lifeline", Contact: "Call or text 988"},
			{Name: "National Suicide Prevention Lifeline", Contact: "1-800-273-8255"},
			{Name: "Crisis Text Line", Contact: "Text HOME to 741741"},
		},
		Articles: []string{
			"Understanding Anxiety and How to Manage It",
			"5 Simple Daily Practices for Mental Wellness",
			"The Science Behind Meditation and Its Benefits",
		},
	}
}
