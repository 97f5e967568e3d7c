package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verte-zerg/vigaff/internal/attack"
	"github.com/verte-zerg/vigaff/internal/cipher"
	"github.com/verte-zerg/vigaff/internal/engine"
	"github.com/verte-zerg/vigaff/internal/freq"
	"github.com/verte-zerg/vigaff/internal/store"
)

// ErrNoDictionaries is returned when a request names a dictionary but the
// server has no store.
var ErrNoDictionaries = errors.New("dictionaries are not available")

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// ActionRequest is the JSON body of every POST route. The route decides the
// kind; Dictionary adds stored keys to the brute-force guesses.
type ActionRequest struct {
	engine.Request
	Dictionary string `json:"dictionary,omitempty"`
}

// Handler serves the API routes.
type Handler struct {
	keys    KeySource
	timeout time.Duration
}

// NewHandler returns a Handler. timeout <= 0 uses DefaultTimeout.
func NewHandler(keys KeySource, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Handler{keys: keys, timeout: timeout}
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "vigaff API is running",
		"kinds":   engine.Kinds(),
	})
}

// Encrypt runs the combined encryption.
func (h *Handler) Encrypt(c *gin.Context) { h.dispatch(c, engine.KindEncrypt) }

// Decrypt runs the combined decryption.
func (h *Handler) Decrypt(c *gin.Context) { h.dispatch(c, engine.KindDecrypt) }

// Frequency analyses the letter distribution of the text.
func (h *Handler) Frequency(c *gin.Context) { h.dispatch(c, engine.KindFrequency) }

// Known runs the known-plaintext attack.
func (h *Handler) Known(c *gin.Context) { h.dispatch(c, engine.KindKnown) }

// Brute runs the brute-force breaker.
func (h *Handler) Brute(c *gin.Context) { h.dispatch(c, engine.KindBrute) }

// Affine ranks affine-only decryptions.
func (h *Handler) Affine(c *gin.Context) { h.dispatch(c, engine.KindAffine) }

func (h *Handler) dispatch(c *gin.Context, kind engine.Kind) {
	id := c.GetString(requestIDKey)
	var body ActionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message:   fmt.Sprintf("Invalid request body: %v", err),
			RequestID: id,
		})
		return
	}
	req := body.Request
	req.ID = id
	req.Kind = kind

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if kind == engine.KindBrute && body.Dictionary != "" {
		keys, err := h.dictionaryKeys(ctx, body.Dictionary)
		if err != nil {
			h.fail(c, id, err)
			return
		}
		req.Guesses = append(req.Guesses, keys...)
	}

	resp, err := engine.Dispatch(ctx, req)
	if err != nil {
		h.fail(c, id, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// dictionaryKeys loads every key of the dictionary. MaxKeyLen bounds only the
// heuristic keys, so guesses are not filtered by length.
func (h *Handler) dictionaryKeys(ctx context.Context, name string) ([]string, error) {
	if h.keys == nil {
		return nil, ErrNoDictionaries
	}
	return h.keys.Keys(ctx, name, 0)
}

func (h *Handler) fail(c *gin.Context, id string, err error) {
	c.JSON(StatusFor(err), ErrorResponse{
		Message:   err.Error(),
		RequestID: id,
	})
}

// StatusFor maps core errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, cipher.ErrInvalidParameter),
		errors.Is(err, cipher.ErrInvalidKey),
		errors.Is(err, cipher.ErrUnknownDirection),
		errors.Is(err, freq.ErrEmptyInput),
		errors.Is(err, engine.ErrShortFragment),
		errors.Is(err, engine.ErrUnknownKind),
		errors.Is(err, ErrNoDictionaries):
		return http.StatusBadRequest
	case errors.Is(err, attack.ErrNoAlignment),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
