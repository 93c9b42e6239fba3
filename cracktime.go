package passcheck

import (
	"fmt"
	"math"
)

// Attacker throughput in guesses per second.
const (
	onlineThrottledRate   = 100.0 / 3600
	onlineUnthrottledRate = 10.0
	offlineSlowHashRate   = 1e4
	offlineFastHashRate   = 1e10
)

// Seconds below which an estimate is shown as "instantly". Offline attacks
// are never reported as instant below a full second.
const (
	onlineInstantly  = 1e-6
	offlineInstantly = 1.0
)

const (
	secondsPerYear = 31536000
	centuries      = 200 * secondsPerYear
)

var durationUnits = []struct {
	name    string
	seconds float64
}{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// CrackTimeSeconds holds raw estimates per attacker model.
type CrackTimeSeconds struct {
	OnlineThrottled   float64 `json:"onlineThrottling"`
	OnlineUnthrottled float64 `json:"onlineNoThrottling"`
	OfflineSlowHash   float64 `json:"offlineSlowHashing"`
	OfflineFastHash   float64 `json:"offlineFastHashing"`
}

// CrackTimeDisplay holds the human readable form of CrackTimeSeconds.
type CrackTimeDisplay struct {
	OnlineThrottled   string `json:"onlineThrottling"`
	OnlineUnthrottled string `json:"onlineNoThrottling"`
	OfflineSlowHash   string `json:"offlineSlowHashing"`
	OfflineFastHash   string `json:"offlineFastHashing"`
}

// CrackTimeResult is the crack-time projection for a password.
type CrackTimeResult struct {
	Seconds CrackTimeSeconds `json:"crackTimesSeconds"`
	Display CrackTimeDisplay `json:"crackTimesDisplay"`
}

// EstimateCrackTime projects the time to guess password under four
// attacker models, assuming 2^entropy guesses.
func EstimateCrackTime(password string) CrackTimeResult {
	entropy := CalculateEntropy(password).Entropy
	if entropy == 0 {
		return CrackTimeResult{
			Display: CrackTimeDisplay{
				OnlineThrottled:   "instantly",
				OnlineUnthrottled: "instantly",
				OfflineSlowHash:   "instantly",
				OfflineFastHash:   "instantly",
			},
		}
	}

	guesses := math.Pow(2, entropy)
	s := CrackTimeSeconds{
		OnlineThrottled:   guesses / onlineThrottledRate,
		OnlineUnthrottled: guesses / onlineUnthrottledRate,
		OfflineSlowHash:   guesses / offlineSlowHashRate,
		OfflineFastHash:   guesses / offlineFastHashRate,
	}

	return CrackTimeResult{
		Seconds: s,
		Display: CrackTimeDisplay{
			OnlineThrottled:   FormatDuration(s.OnlineThrottled, onlineInstantly),
			OnlineUnthrottled: FormatDuration(s.OnlineUnthrottled, onlineInstantly),
			OfflineSlowHash:   FormatDuration(s.OfflineSlowHash, offlineInstantly),
			OfflineFastHash:   FormatDuration(s.OfflineFastHash, offlineInstantly),
		},
	}
}

// FormatDuration renders seconds as "instantly", "centuries" or "<n> <unit>[s]"
// using the largest whole unit. Values below instantly are "instantly".
func FormatDuration(seconds, instantly float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "centuries"
	}
	if seconds < instantly {
		return "instantly"
	}
	if seconds > centuries {
		return "centuries"
	}

	for _, u := range durationUnits {
		n := math.Floor(seconds / u.seconds)
		if n >= 1 {
			if n == 1 {
				return fmt.Sprintf("1 %s", u.name)
			}
			return fmt.Sprintf("%d %ss", int64(n), u.name)
		}
	}
	return "instantly"
}
