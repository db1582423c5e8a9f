package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/apperrors"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/justsurfingit/job-board/internal/models"
)

const (
	userKey   = "currentUser"
	claimsKey = "tokenClaims"

	MsgNotAuthorized = "User Not Authorized"
)

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// IsAuthenticated resolves the session token into the current user.
func IsAuthenticated(tokens *auth.TokenManager, revoker auth.Revoker, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFromRequest(c)
		if raw == "" {
			abort(c, apperrors.BadRequest(MsgNotAuthorized, nil))
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abort(c, apperrors.BadRequest(MsgNotAuthorized, err))
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			abort(c, apperrors.Internal("Failed to verify session", err))
			return
		}
		if revoked {
			abort(c, apperrors.BadRequest(MsgNotAuthorized, nil))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			abort(c, apperrors.BadRequest(MsgNotAuthorized, err))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, database.ErrNotFound) {
				abort(c, apperrors.BadRequest(MsgNotAuthorized, err))
				return
			}
			abort(c, apperrors.Internal("Failed to load user", err))
			return
		}

		c.Set(userKey, user)
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CurrentUser returns the user attached by IsAuthenticated.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentClaims returns the verified token claims of the request.
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
