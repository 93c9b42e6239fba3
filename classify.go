package passcheck

// CharacterPresence reports which character classes occur in a password.
type CharacterPresence struct {
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Number    bool `json:"number"`
	Symbol    bool `json:"symbol"`
}

// Diversity is the number of distinct classes present (0-4).
func (p CharacterPresence) Diversity() int {
	n := 0
	for _, ok := range [...]bool{p.Lowercase, p.Uppercase, p.Number, p.Symbol} {
		if ok {
			n++
		}
	}
	return n
}

// CharacterCounts holds per-class occurrence totals.
type CharacterCounts struct {
	Lowercase int `json:"lowercase"`
	Uppercase int `json:"uppercase"`
	Number    int `json:"number"`
	Symbol    int `json:"symbol"`
}

// Classify scans the password once. Only ASCII letters and digits are
// classified as such; every other code point, including non-ASCII letters,
// counts as a symbol.
func Classify(password string) (CharacterPresence, CharacterCounts) {
	var c CharacterCounts
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			c.Lowercase++
		case r >= 'A' && r <= 'Z':
			c.Uppercase++
		case r >= '0' && r <= '9':
			c.Number++
		default:
			c.Symbol++
		}
	}

	p := CharacterPresence{
		Lowercase: c.Lowercase > 0,
		Uppercase: c.Uppercase > 0,
		Number:    c.Number > 0,
		Symbol:    c.Symbol > 0,
	}
	return p, c
}
