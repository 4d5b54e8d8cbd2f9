package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/token"
	"github.com/jrsteele09/pos-console/users"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// IssuedToken is a freshly signed access token and the metadata needed to revoke it.
type IssuedToken struct {
	Raw       string
	JTI       string
	ExpiresAt time.Time
}

// Creator issues and verifies POS access tokens
type Creator struct {
	signer Signer
	issuer string
	expiry time.Duration
}

func NewCreator(signer Signer, issuer string, expiry time.Duration) *Creator {
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &Creator{
		signer: signer,
		issuer: issuer,
		expiry: expiry,
	}
}

// CreateAccessToken signs a token carrying the user's identity and role
func (c *Creator) CreateAccessToken(user *users.User) (*IssuedToken, error) {
	now := NowTimeFunc()
	exp := now.Add(c.expiry)
	jti := uuid.New().String()

	claims := jwtlib.MapClaims{
		"iss":      c.issuer,          // The issuer of the token
		"sub":      user.ID,           // Users unique ID
		"username": user.Username,     // Login name shown by the console
		"role":     string(user.Role), // Console section
		"iat":      int64(now.Unix()), // Issued At
		"exp":      int64(exp.Unix()), // Expiry
		"jti":      jti,               // Unique token ID for revocation
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT token: %w", err)
	}
	return &IssuedToken{Raw: signed, JTI: jti, ExpiresAt: time.Unix(exp.Unix(), 0)}, nil
}

// Verify checks the signature and expiry and returns the claims.
func (c *Creator) Verify(raw string) (*token.Claims, error) {
	claims := &token.Claims{}
	parsed, err := jwtlib.ParseWithClaims(raw, claims, c.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil || !parsed.Valid {
		return nil, poserrors.Wrapf(poserrors.ErrInvalidToken, "verify: %v", err)
	}
	if claims.ID == "" {
		return nil, poserrors.Wrapf(poserrors.ErrInvalidToken, "token missing jti claim")
	}
	return claims, nil
}
