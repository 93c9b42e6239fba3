package passcheck

import (
	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// maxReferenceRunes caps the input given to zxcvbn, whose cost grows quickly
// with password length.
const maxReferenceRunes = 50

// Reference is a zxcvbn estimate reported next to the heuristic analysis.
//
// Score follows the zxcvbn scale:
//
//	0 too guessable (guesses < 10^3)
//	1 very guessable (< 10^6)
//	2 somewhat guessable (< 10^8)
//	3 safely unguessable (< 10^10)
//	4 very unguessable
type Reference struct {
	Score            int     `json:"score"`
	Entropy          float64 `json:"entropy"`
	CrackTimeSeconds float64 `json:"crackTimeSeconds"`
	CrackTimeDisplay string  `json:"crackTimeDisplay"`
	Truncated        bool    `json:"truncated,omitempty"`
}

// ReferenceStrength scores password with zxcvbn. userInputs (user name,
// email, ...) are penalized when they appear in the password.
func ReferenceStrength(password string, userInputs ...string) Reference {
	check := password
	truncated := false
	if r := []rune(password); len(r) > maxReferenceRunes {
		check = string(r[:maxReferenceRunes])
		truncated = true
	}

	m := zxcvbn.PasswordStrength(check, userInputs)
	return Reference{
		Score:            m.Score,
		Entropy:          m.Entropy,
		CrackTimeSeconds: m.CrackTime,
		CrackTimeDisplay: m.CrackTimeDisplay,
		Truncated:        truncated,
	}
}
