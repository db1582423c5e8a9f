package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/models"
)

const CookieName = "token"

// Session writes and clears the session cookie.
type Session struct {
	Tokens       *TokenManager
	CookieExpire time.Duration
	Secure       bool
	now          func() time.Time
}

func NewSession(tokens *TokenManager, cookieExpire time.Duration, secure bool) *Session {
	return &Session{
		Tokens:       tokens,
		CookieExpire: cookieExpire,
		Secure:       secure,
		now:          time.Now,
	}
}

// SendToken signs a token for user, sets it as an HTTP-only cookie and
// responds with the user, message and token.
func (s *Session) SendToken(c *gin.Context, user *models.User, statusCode int, message string) error {
	token, _, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return err
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  s.now().Add(s.CookieExpire),
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	c.JSON(statusCode, gin.H{
		"success": true,
		"user":    user,
		"message": message,
		"token":   token,
	})
	return nil
}

// ClearToken expires the session cookie immediately.
func (s *Session) ClearToken(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  s.now(),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
