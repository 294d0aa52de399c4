// Package auth resolves who is calling. There are two classes of caller:
// the campaign admin, who logs in with email and password, and everyone else.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rqsn/donasi/internal/apperr"
)

type Class string

const (
	ClassAdmin     Class = "admin"
	ClassAnonymous Class = "anonymous"
)

type Identity struct {
	Subject string
	Class   Class
}

func (i Identity) Admin() bool {
	return i.Class == ClassAdmin
}

var Anonymous = Identity{Class: ClassAnonymous}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

type Claims struct {
	Class Class `json:"class"`
	jwt.RegisteredClaims
}

type Options struct {
	Secret            string
	AdminEmail        string
	AdminPasswordHash string // bcrypt
	TokenTTL          time.Duration
}

type Authenticator struct {
	secret     []byte
	adminEmail string
	adminHash  []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewAuthenticator(opts Options) (*Authenticator, error) {
	if opts.Secret == "" {
		return nil, errors.New("token secret is required")
	}

	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 12 * time.Hour
	}

	return &Authenticator{
		secret:     []byte(opts.Secret),
		adminEmail: strings.ToLower(strings.TrimSpace(opts.AdminEmail)),
		adminHash:  []byte(opts.AdminPasswordHash),
		ttl:        opts.TokenTTL,
		now:        time.Now,
	}, nil
}

// Login checks the admin credentials and returns a signed admin token.
func (a *Authenticator) Login(email, password string) (string, time.Time, error) {
	if a.adminEmail == "" || len(a.adminHash) == 0 {
		return "", time.Time{}, ErrInvalidCredentials
	}

	if strings.ToLower(strings.TrimSpace(email)) != a.adminEmail {
		return "", time.Time{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(a.adminHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	return a.Issue(a.adminEmail, ClassAdmin)
}

func (a *Authenticator) Issue(subject string, class Class) (string, time.Time, error) {
	now := a.now()
	expires := now.Add(a.ttl)

	claims := Claims{
		Class: class,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return signed, expires, nil
}

// Verify parses a token issued by Issue.
func (a *Authenticator) Verify(token string) (Identity, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(a.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Class != ClassAdmin && claims.Class != ClassAnonymous {
		return Identity{}, fmt.Errorf("%w: unknown class %q", ErrInvalidToken, claims.Class)
	}

	return Identity{Subject: claims.Subject, Class: claims.Class}, nil
}

// HashPassword returns the bcrypt hash to put in the admin configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the caller identity, Anonymous when none was attached.
func FromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(ctxKey{}).(Identity); ok {
		return id
	}

	return Anonymous
}

// RequireAdmin returns apperr.ErrPermission unless ctx carries an admin.
func RequireAdmin(ctx context.Context) error {
	if !FromContext(ctx).Admin() {
		return fmt.Errorf("admin required: %w", apperr.ErrPermission)
	}

	return nil
}
