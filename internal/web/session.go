package web

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// SessionCookie is the name of the cookie carrying the signed session.
const SessionCookie = "session"

// Session is the logged-in state carried by the cookie.
type Session struct {
	UserID   uint
	Username string
}

// SessionManager issues and validates the signed session cookie. The
// cookie value is an HS256 JWT carrying user_id and username with a
// bounded lifetime, so the gateway needs no server-side session store.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager creates a SessionManager signing with secret. Tokens
// expire after ttl.
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a session token for the user.
func (m *SessionManager) Issue(userID uint, username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(m.ttl).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// Parse validates a session token and extracts the session state.
func (m *SessionManager) Parse(tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, fmt.Errorf("session token missing user_id")
	}
	username, _ := claims["username"].(string)

	return &Session{
		UserID:   uint(userID),
		Username: username,
	}, nil
}
