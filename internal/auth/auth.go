package auth

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrForbidden      = errors.New("forbidden")
	ErrSessionExpired = errors.New("admin session expired")
)

type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authorizer checks admin rights. Admin ids come from configuration; an admin
// additionally needs a live session opened with /start_admin.
type Authorizer struct {
	admins       []int64
	secret       []byte
	ttl          time.Duration
	passwordHash []byte

	mu       sync.Mutex
	sessions map[int64]string // токены в памяти, теряются при рестарте
	now      func() time.Time
}

func NewAuthorizer(admins []int64, secret string, ttl time.Duration, passwordHash string) *Authorizer {
	a := &Authorizer{
		admins:   admins,
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: make(map[int64]string),
		now:      time.Now,
	}
	if passwordHash != "" {
		a.passwordHash = []byte(passwordHash)
	}
	return a
}

func (a *Authorizer) IsAdmin(userID int64) bool {
	return lo.Contains(a.admins, userID)
}

func (a *Authorizer) Admins() []int64 {
	return a.admins
}

// Login opens an admin session. The password is checked only when a hash is configured.
func (a *Authorizer) Login(userID int64, username, password string) error {
	if !a.IsAdmin(userID) {
		return ErrForbidden
	}
	if a.passwordHash != nil {
		if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
			return ErrForbidden
		}
	}

	token, err := a.generateToken(userID, username)
	if err != nil {
		return fmt.Errorf("generate token: %w", err)
	}
	a.mu.Lock()
	a.sessions[userID] = token
	a.mu.Unlock()
	return nil
}

func (a *Authorizer) Logout(userID int64) {
	a.mu.Lock()
	delete(a.sessions, userID)
	a.mu.Unlock()
}

// Authorize is called first thing in every admin operation.
func (a *Authorizer) Authorize(userID int64) error {
	if !a.IsAdmin(userID) {
		return ErrForbidden
	}
	a.mu.Lock()
	token, ok := a.sessions[userID]
	a.mu.Unlock()
	if !ok {
		return ErrSessionExpired
	}

	claims, err := a.verifyToken(token)
	if err != nil || claims.UserID != userID {
		a.Logout(userID)
		return ErrSessionExpired
	}
	return nil
}

func (a *Authorizer) generateToken(userID int64, username string) (string, error) {
	now := a.now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(userID, 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

func (a *Authorizer) verifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
