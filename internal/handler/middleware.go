package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OwnershipChecker answers whether a wallet holds an access token.
type OwnershipChecker interface {
	OwnsToken(ctx context.Context, address string) (bool, error)
}

// APIKeyAuth returns a Gin middleware that enforces X-API-Key header
// validation. An empty key disables the check.
func APIKeyAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		provided := strings.TrimSpace(c.GetHeader("X-API-Key"))
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-API-Key header"})
			return
		}
		if provided != key {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid API key"})
			return
		}
		c.Next()
	}
}

// WalletGate returns a Gin middleware admitting only wallets that hold
// a token of the access collection. A nil checker disables the gate.
func WalletGate(checker OwnershipChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if checker == nil {
			c.Next()
			return
		}
		address := strings.TrimSpace(c.GetHeader("X-Wallet-Address"))
		if address == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing X-Wallet-Address header"})
			return
		}
		owns, err := checker.OwnsToken(c.Request.Context(), address)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "ownership check failed: " + err.Error()})
			return
		}
		if !owns {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "wallet holds no access token"})
			return
		}
		c.Next()
	}
}
