// Package server exposes the cipher and attacks over an HTTP JSON API.
package server

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// DefaultAddr is the listen address used when none is configured.
	DefaultAddr = ":8080"
	// DefaultTimeout bounds a single request, mostly brute-force searches.
	DefaultTimeout = 30 * time.Second

	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// KeySource resolves a stored dictionary into guess keys.
type KeySource interface {
	Keys(ctx context.Context, name string, maxLen int) ([]string, error)
}

// Options configures the API server.
type Options struct {
	Addr         string
	AllowOrigins []string
	Timeout      time.Duration
	// Keys is optional; without it requests naming a dictionary fail.
	Keys KeySource
}

// NewRouter builds the gin engine with every API route registered.
func NewRouter(opts Options) *gin.Engine {
	router := gin.Default()

	config := cors.DefaultConfig()
	if len(opts.AllowOrigins) > 0 {
		config.AllowOrigins = opts.AllowOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	router.Use(cors.New(config))
	router.Use(requestID())

	h := NewHandler(opts.Keys, opts.Timeout)

	api := router.Group("/api/v1")
	{
		api.GET("/health", h.HealthCheck)
		api.POST("/encrypt", h.Encrypt)
		api.POST("/decrypt", h.Decrypt)
		api.POST("/frequency", h.Frequency)

		attack := api.Group("/attack")
		{
			attack.POST("/known", h.Known)
			attack.POST("/brute", h.Brute)
			attack.POST("/affine", h.Affine)
		}
	}
	return router
}

// Run serves the API until the listener fails.
func Run(opts Options) error {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	router := NewRouter(opts)

	log.Printf("Server starting on %s", opts.Addr)
	log.Printf("API endpoints:")
	log.Printf("  GET  /api/v1/health         - Health check")
	log.Printf("  POST /api/v1/encrypt        - Vigenère then Affine")
	log.Printf("  POST /api/v1/decrypt        - Affine then Vigenère")
	log.Printf("  POST /api/v1/frequency      - Letter frequency and chi-squared")
	log.Printf("  POST /api/v1/attack/known   - Known-plaintext attack")
	log.Printf("  POST /api/v1/attack/brute   - Brute-force affine pairs and short keys")
	log.Printf("  POST /api/v1/attack/affine  - Brute-force the affine layer only")

	return router.Run(opts.Addr)
}

// requestID echoes X-Request-ID or assigns a fresh one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
