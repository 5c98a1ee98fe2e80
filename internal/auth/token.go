package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/workhive/workhive/internal/model"
)

// Token format: wh_{payload}.{signature}
// payload is base64url JSON, signature is hex HMAC-SHA256 over the payload.
const tokenPrefix = "wh_"

// DefaultTokenTTL is the signing lifetime for issued tokens.
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken indicates the token is malformed or the signature
	// does not verify.
	ErrInvalidToken = errors.New("invalid token")
	// ErrTokenExpired indicates the token's lifetime has elapsed.
	ErrTokenExpired = errors.New("token expired")
)

// TokenClaims is the signed payload carried by a bearer token.
type TokenClaims struct {
	UserID    string     `json:"uid"`
	Role      model.Role `json:"role"`
	IssuedAt  int64      `json:"iat"`
	ExpiresAt int64      `json:"exp"`
}

// Signer issues and verifies HMAC-signed bearer tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a Signer with the given secret and token lifetime.
// A zero ttl falls back to DefaultTokenTTL.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Sign issues a time-bounded token carrying the user's identity and role.
func (s *Signer) Sign(userID string, role model.Role) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID:    userID,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return tokenPrefix + encoded + "." + s.signature(encoded), nil
}

// Verify validates the token signature and expiry, returning the claims.
func (s *Signer) Verify(token string) (*TokenClaims, error) {
	rest, ok := strings.CutPrefix(token, tokenPrefix)
	if !ok {
		return nil, ErrInvalidToken
	}

	encoded, sig, ok := strings.Cut(rest, ".")
	if !ok {
		return nil, ErrInvalidToken
	}

	expected := s.signature(encoded)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return nil, ErrInvalidToken
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims TokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" || !claims.Role.IsValid() {
		return nil, ErrInvalidToken
	}

	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}

// signature computes the hex HMAC-SHA256 of the encoded payload.
func (s *Signer) signature(encoded string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}
