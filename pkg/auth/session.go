// Package auth implements the shared-password admin gate: a single studio
// password unlocks a session token for the admin surface.
package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/argon2"
)

// ExtractToken extracts the JWT token from an Authorization header value.
// Supports "Bearer <token>" format.
func ExtractToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("empty authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header format")
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("empty token")
	}

	return token, nil
}

// SessionGate checks the shared admin secret and issues session tokens.
// There is exactly one operator identity; knowing the password is the whole
// of the authorization model.
type SessionGate struct {
	secretKey    []byte
	sessionTTL   time.Duration
	password     string // plain shared secret
	passwordHash string // argon2id encoded hash; preferred when set
}

// NewSessionGate creates a session gate. Either password or passwordHash must
// be set; the hash takes precedence when both are.
func NewSessionGate(jwtSecret, password, passwordHash string, sessionTTL time.Duration) (*SessionGate, error) {
	if jwtSecret == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	if password == "" && passwordHash == "" {
		return nil, errors.New("admin password or password hash is required")
	}
	if sessionTTL == 0 {
		sessionTTL = 12 * time.Hour
	}

	return &SessionGate{
		secretKey:    []byte(jwtSecret),
		sessionTTL:   sessionTTL,
		password:     password,
		passwordHash: passwordHash,
	}, nil
}

// Login checks a submitted password against the shared secret.
func (g *SessionGate) Login(password string) bool {
	if g.passwordHash != "" {
		ok, err := VerifyPassword(g.passwordHash, password)
		return err == nil && ok
	}
	return subtle.ConstantTimeCompare([]byte(g.password), []byte(password)) == 1
}

// SessionClaims represents the session token claims
type SessionClaims struct {
	jwt.RegisteredClaims
}

// IssueToken generates a session token for the operator.
func (g *SessionGate) IssueToken() (string, time.Time, error) {
	expiresAt := time.Now().Add(g.sessionTTL)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "operator",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "studiodeck",
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expiresAt, nil
}

// VerifyToken validates a session token.
func (g *SessionGate) VerifyToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.secretKey, nil
	})
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return errors.New("invalid session token")
	}
	return nil
}

// Argon2 password hashing parameters (OWASP recommended)
const (
	argon2Time      = 3         // Number of iterations
	argon2Memory    = 64 * 1024 // 64MB
	argon2Threads   = 4         // Parallelism
	argon2KeyLength = 32        // 32 bytes (256 bits)
	saltLength      = 16        // 16 bytes salt
)

// HashPassword hashes a password using Argon2id.
// Format: argon2id$salt$hash with raw base64 parts.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLength)

	saltEncoded := base64.RawStdEncoding.EncodeToString(salt)
	hashEncoded := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("argon2id$%s$%s", saltEncoded, hashEncoded), nil
}

// VerifyPassword verifies a password against an Argon2id hash
func VerifyPassword(hashedPassword, password string) (bool, error) {
	if !strings.HasPrefix(hashedPassword, "argon2id$") {
		return false, fmt.Errorf("invalid hash format: missing argon2id prefix")
	}

	hashParts := strings.Split(strings.TrimPrefix(hashedPassword, "argon2id$"), "$")
	if len(hashParts) != 2 {
		return false, fmt.Errorf("invalid hash format: expected 2 parts, got %d", len(hashParts))
	}

	salt, err := base64.RawStdEncoding.DecodeString(hashParts[0])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(hashParts[1])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	actualHash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLength)

	return subtle.ConstantTimeCompare(actualHash, expectedHash) == 1, nil
}
