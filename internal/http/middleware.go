package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servicehub/account-service/internal/domain"
	"github.com/servicehub/account-service/internal/metrics"
)

const authAccountKey = "authAccount"

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.InFlight.Inc()
		start := time.Now()
		c.Next()
		metrics.InFlight.Dec()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Authenticated resolves the principal from either a Bearer session token or
// HTTP Basic credentials checked against the store, and puts the account on
// the context.
func (h *Handler) Authenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		hdr := c.GetHeader("Authorization")
		switch {
		case strings.HasPrefix(strings.ToLower(hdr), "bearer "):
			tok := strings.TrimSpace(hdr[len("Bearer "):])
			claims, err := h.Tokens.Parse(tok)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			a, err := h.Accounts.GetByID(c.Request.Context(), claims.UID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			c.Set(authAccountKey, a)
		case strings.HasPrefix(strings.ToLower(hdr), "basic "):
			email, pw, ok := c.Request.BasicAuth()
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			a, err := h.Accounts.CheckCredentials(c.Request.Context(), email, pw)
			if err != nil {
				writeErr(c, "", err)
				c.Abort()
				return
			}
			c.Set(authAccountKey, a)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}
		c.Next()
	}
}

func currentAccount(c *gin.Context) *domain.Account {
	v, _ := c.Get(authAccountKey)
	a, _ := v.(*domain.Account)
	return a
}

// RateLimitLogin rejects over-limit IPs with 429. Nil limiter disables it.
func (h *Handler) RateLimitLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.Limiter != nil && !h.Limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
