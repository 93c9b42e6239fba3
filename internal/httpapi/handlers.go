package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fernandezvara/passcheck"
)

// Options configures NewHandler.
type Options struct {
	Policy            passcheck.Policy
	Wordlists         *passcheck.Wordlists
	Generator         *passcheck.Generator
	GeneratorDefaults passcheck.GeneratorOptions
	DefaultSize       passcheck.ListSize
	Reference         bool
	Metrics           *Metrics
}

// Handler serves the password analysis endpoints.
type Handler struct {
	policy      passcheck.Policy
	wordlists   *passcheck.Wordlists
	generator   *passcheck.Generator
	genDefaults passcheck.GeneratorOptions
	defaultSize passcheck.ListSize
	reference   bool
	metrics     *Metrics
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		policy:      opts.Policy,
		wordlists:   opts.Wordlists,
		generator:   opts.Generator,
		genDefaults: opts.GeneratorDefaults,
		defaultSize: opts.DefaultSize,
		reference:   opts.Reference,
		metrics:     opts.Metrics,
	}
	if h.wordlists == nil {
		h.wordlists = passcheck.NewWordlists(nil)
	}
	if h.generator == nil {
		h.generator = passcheck.NewGenerator(nil)
	}
	if h.genDefaults == (passcheck.GeneratorOptions{}) {
		h.genDefaults = passcheck.DefaultGeneratorOptions()
	}
	if h.defaultSize == "" {
		h.defaultSize = passcheck.List10K
	}
	return h
}

// Analyze runs every estimator plus the wordlist lookup.
func (h *Handler) Analyze(c *gin.Context) {
	var req PasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	size, ok := h.listSize(c, req.Size)
	if !ok {
		return
	}

	a := h.policy.Analyze(req.Password)
	h.metrics.ObserveStrength(a.Strength)
	h.metrics.ObservePatterns(a.Patterns)

	resp := AnalyzeResponse{
		Strength:  a.Strength,
		Entropy:   a.Entropy,
		CrackTime: NewCrackTimeResponse(a.CrackTime),
		Patterns:  a.Patterns,
		Common:    h.lookup(c.Request.Context(), req.Password, size),
	}
	if h.reference {
		ref := passcheck.ReferenceStrength(req.Password, req.UserInputs...)
		resp.Reference = &ref
	}

	c.JSON(http.StatusOK, resp)
}

// Strength resolves the tier under the configured policy.
func (h *Handler) Strength(c *gin.Context) {
	var req PasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	res := h.policy.Check(req.Password)
	h.metrics.ObserveStrength(res)
	c.JSON(http.StatusOK, res)
}

// Common checks the password against a wordlist.
func (h *Handler) Common(c *gin.Context) {
	var req PasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	size, ok := h.listSize(c, req.Size)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.lookup(c.Request.Context(), req.Password, size))
}

// Generate creates a password. Fields missing from the body keep their
// configured defaults; an empty body uses the defaults as is.
func (h *Handler) Generate(c *gin.Context) {
	opts := h.genDefaults
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &opts) {
			return
		}
	}

	pw, err := h.generator.Generate(opts)
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, passcheck.ErrInvalidConfiguration):
			c.JSON(http.StatusBadRequest, newErrorResponse(c, err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, newErrorResponse(c, "password generation failed"))
		}
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Password: pw,
		Strength: h.policy.Check(pw),
	})
}

// Health reports liveness and which wordlists are cached.
func (h *Handler) Health(c *gin.Context) {
	loaded := make([]string, 0, 4)
	for _, size := range passcheck.ListSizes() {
		if h.wordlists.Loaded(size) {
			loaded = append(loaded, string(size))
		}
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Wordlists: loaded})
}

func (h *Handler) lookup(ctx context.Context, password string, size passcheck.ListSize) CommonResponse {
	resp := CommonResponse{Size: size, Common: h.wordlists.IsCommon(ctx, password, size)}
	if !resp.Common {
		if v, ok := h.wordlists.MatchVariant(ctx, password, size); ok {
			resp.Variant = v
		}
	}
	h.metrics.ObserveCommon(size, resp.Common)
	return resp
}

func (h *Handler) listSize(c *gin.Context, s string) (passcheck.ListSize, bool) {
	if strings.TrimSpace(s) == "" {
		return h.defaultSize, true
	}
	size, err := passcheck.ParseListSize(s)
	if err != nil {
		c.JSON(http.StatusBadRequest, newErrorResponse(c, err.Error()))
		return "", false
	}
	return size, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	_ = c.Error(err)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, newErrorResponse(c, "request body too large"))
		return false
	}
	c.JSON(http.StatusBadRequest, newErrorResponse(c, "invalid request body"))
	return false
}
