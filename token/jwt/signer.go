package jwt

import (
	"fmt"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Signer signs claims and supplies the key used to verify them.
type Signer interface {
	Sign(claims jwtlib.MapClaims) (string, error)
	GetVerificationKey(token *jwtlib.Token) (any, error)
	GetSigningMethod() jwtlib.SigningMethod
}

// HMACSigner implements Signer using symmetric HMAC-SHA256
type HMACSigner struct {
	secret []byte
}

func NewHMACSigner(secret []byte) *HMACSigner {
	return &HMACSigner{
		secret: secret,
	}
}

func (h *HMACSigner) Sign(claims jwtlib.MapClaims) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(h.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token with HMAC")
	}
	return signedToken, nil
}

func (h *HMACSigner) GetVerificationKey(token *jwtlib.Token) (any, error) {
	if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return h.secret, nil
}

func (h *HMACSigner) GetSigningMethod() jwtlib.SigningMethod {
	return jwtlib.SigningMethodHS256
}

// UnsignedSigner produces alg "none" tokens. Only useful where nothing verifies the
// signature, such as fixtures for the console's decoder.
type UnsignedSigner struct{}

func (UnsignedSigner) Sign(claims jwtlib.MapClaims) (string, error) {
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, claims)
	return token.SignedString(jwtlib.UnsafeAllowNoneSignatureType)
}

func (UnsignedSigner) GetVerificationKey(*jwtlib.Token) (any, error) {
	return nil, errors.New("unsigned tokens cannot be verified")
}

func (UnsignedSigner) GetSigningMethod() jwtlib.SigningMethod {
	return jwtlib.SigningMethodNone
}
