package passcheck

import (
	"fmt"
	"strings"
)

// Risk weights per detected pattern category.
const (
	keyboardRisk   = 30
	sequentialRisk = 25
	repeatedRisk   = 20
	dateRisk       = 25
	maxRisk        = 100
)

const (
	suggestKeyboard   = "Avoid keyboard patterns like 'qwerty' or 'asdf'"
	suggestSequential = "Avoid sequential characters like 'abc' or '123'"
	suggestRepeated   = "Avoid repeating the same character multiple times"
	suggestDate       = "Avoid using dates or years in your password"
	suggestRandom     = "Consider using a randomly generated password"
)

// keyboardPatterns is scanned in order; the first entry found wins.
var keyboardPatterns = []string{
	"qwerty", "asdfgh", "zxcvbn",
	// numeric-row diagonals
	"1qaz", "2wsx", "3edc", "4rfv", "5tgb", "6yhn", "7ujm", "8ik,", "9ol.", "0p;/",
	// row fragments
	"qwe", "wer", "ert", "rty", "tyu", "yui", "uio", "iop",
	"asd", "sdf", "dfg", "fgh", "ghj", "hjk", "jkl",
	"zxc", "xcv", "cvb", "vbn", "bnm",
}

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digitRow = "0123456789"
)

// PatternResult lists the weak patterns found in a password.
type PatternResult struct {
	HasKeyboardPattern bool     `json:"hasKeyboardPattern"`
	HasSequentialChars bool     `json:"hasSequentialChars"`
	HasRepeatedChars   bool     `json:"hasRepeatedChars"`
	HasDatePattern     bool     `json:"hasDatePattern"`
	RiskScore          int      `json:"riskScore"`
	DetectedPatterns   []string `json:"detectedPatterns"`
	Suggestions        []string `json:"suggestions"`
}

// AnalyzePatterns runs the keyboard, sequence, repeat and date detectors
// over the lowercased password. Risk is the sum of the weights of the
// detected categories, capped at 100.
func AnalyzePatterns(password string) PatternResult {
	lower := []rune(strings.ToLower(password))
	res := PatternResult{
		DetectedPatterns: []string{},
		Suggestions:      []string{},
	}

	// 1. Keyboard patterns
	if m, ok := findKeyboardPattern(string(lower)); ok {
		res.HasKeyboardPattern = true
		res.RiskScore += keyboardRisk
		res.DetectedPatterns = append(res.DetectedPatterns, fmt.Sprintf("Keyboard pattern: %q", m))
		res.Suggestions = append(res.Suggestions, suggestKeyboard)
	}

	// 2. Sequential characters, letters before digits
	alpha, alphaOK := findSequence(lower, alphabet)
	num, numOK := findSequence(lower, digitRow)
	if alphaOK {
		res.DetectedPatterns = append(res.DetectedPatterns, fmt.Sprintf("Sequential letters: %q", alpha))
	}
	if numOK {
		res.DetectedPatterns = append(res.DetectedPatterns, fmt.Sprintf("Sequential numbers: %q", num))
	}
	if alphaOK || numOK {
		res.HasSequentialChars = true
		res.RiskScore += sequentialRisk
		res.Suggestions = append(res.Suggestions, suggestSequential)
	}

	// 3. Repeated characters
	if m, ok := findRepeat(lower); ok {
		res.HasRepeatedChars = true
		res.RiskScore += repeatedRisk
		res.DetectedPatterns = append(res.DetectedPatterns, fmt.Sprintf("Repeated characters: %q", m))
		res.Suggestions = append(res.Suggestions, suggestRepeated)
	}

	// 4. Years
	if m, ok := findYear(lower); ok {
		res.HasDatePattern = true
		res.RiskScore += dateRisk
		res.DetectedPatterns = append(res.DetectedPatterns, fmt.Sprintf("Date pattern: %q", m))
		res.Suggestions = append(res.Suggestions, suggestDate)
	}

	if res.RiskScore > maxRisk {
		res.RiskScore = maxRisk
	}
	if res.RiskScore > 50 {
		res.Suggestions = append(res.Suggestions, suggestRandom)
	}
	return res
}

func findKeyboardPattern(lower string) (string, bool) {
	for _, p := range keyboardPatterns {
		if strings.Contains(lower, p) {
			return p, true
		}
	}
	return "", false
}

// findSequence reports the first three character ascending run of seq
// that occurs in s, trying runs in the order they appear in seq.
func findSequence(s []rune, seq string) (string, bool) {
	str := string(s)
	for i := 0; i+3 <= len(seq); i++ {
		run := seq[i : i+3]
		if strings.Contains(str, run) {
			return run, true
		}
	}
	return "", false
}

// findRepeat returns the first run of one rune repeated three or more times.
func findRepeat(s []rune) (string, bool) {
	for i := 0; i < len(s); {
		j := i + 1
		for j < len(s) && s[j] == s[i] {
			j++
		}
		if j-i >= 3 {
			return string(s[i:j]), true
		}
		i = j
	}
	return "", false
}

// findYear returns the first four digit group starting with 19 or 20.
func findYear(s []rune) (string, bool) {
	isDigit := func(r rune) bool { return r >= '0' && r <= '9' }
	for i := 0; i+4 <= len(s); i++ {
		if !isDigit(s[i+2]) || !isDigit(s[i+3]) {
			continue
		}
		if (s[i] == '1' && s[i+1] == '9') || (s[i] == '2' && s[i+1] == '0') {
			return string(s[i : i+4]), true
		}
	}
	return "", false
}
