package httpapi

import (
	"math"

	"github.com/gin-gonic/gin"

	"github.com/fernandezvara/passcheck"
)

// PasswordRequest is the body of the analyze, strength and common endpoints.
type PasswordRequest struct {
	Password   string   `json:"password"`
	Size       string   `json:"size,omitempty"`
	UserInputs []string `json:"userInputs,omitempty"`
}

// AnalyzeResponse is the full report for one password.
type AnalyzeResponse struct {
	Strength  passcheck.StrengthResult `json:"strength"`
	Entropy   passcheck.EntropyResult  `json:"entropy"`
	CrackTime CrackTimeResponse        `json:"crackTime"`
	Patterns  passcheck.PatternResult  `json:"patterns"`
	Common    CommonResponse           `json:"common"`
	Reference *passcheck.Reference     `json:"reference,omitempty"`
}

// CrackTimeResponse mirrors passcheck.CrackTimeResult with non-finite
// seconds encoded as null.
type CrackTimeResponse struct {
	Seconds CrackTimeSecondsResponse   `json:"crackTimesSeconds"`
	Display passcheck.CrackTimeDisplay `json:"crackTimesDisplay"`
}

type CrackTimeSecondsResponse struct {
	OnlineThrottled   *float64 `json:"onlineThrottling"`
	OnlineUnthrottled *float64 `json:"onlineNoThrottling"`
	OfflineSlowHash   *float64 `json:"offlineSlowHashing"`
	OfflineFastHash   *float64 `json:"offlineFastHashing"`
}

// CommonResponse reports a wordlist lookup. Variant is the list entry
// matched after case folding or leet normalization.
type CommonResponse struct {
	Size    passcheck.ListSize `json:"size"`
	Common  bool               `json:"common"`
	Variant string             `json:"variant,omitempty"`
}

type GenerateResponse struct {
	Password string                   `json:"password"`
	Strength passcheck.StrengthResult `json:"strength"`
}

type HealthResponse struct {
	Status    string   `json:"status"`
	Wordlists []string `json:"wordlists"`
}

// ErrorResponse represents a generic error payload.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newErrorResponse(c *gin.Context, msg string) ErrorResponse {
	return ErrorResponse{Error: msg, RequestID: c.GetString(requestIDKey)}
}

// NewCrackTimeResponse converts r for JSON encoding.
func NewCrackTimeResponse(r passcheck.CrackTimeResult) CrackTimeResponse {
	return CrackTimeResponse{
		Seconds: CrackTimeSecondsResponse{
			OnlineThrottled:   finite(r.Seconds.OnlineThrottled),
			OnlineUnthrottled: finite(r.Seconds.OnlineUnthrottled),
			OfflineSlowHash:   finite(r.Seconds.OfflineSlowHash),
			OfflineFastHash:   finite(r.Seconds.OfflineFastHash),
		},
		Display: r.Display,
	}
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
