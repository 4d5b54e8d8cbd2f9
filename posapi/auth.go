package posapi

import (
	"context"

	poserrors "github.com/jrsteele09/pos-console/internal/errors"
	"github.com/jrsteele09/pos-console/internal/utils"
)

const (
	LoginPath    = "/auth/login"
	LogoutPath   = "/auth/logout"
	RefreshPath  = "/auth/refresh"
	RegisterPath = "/auth/register"

	PasswordRecoveryPath = "/auth/password-recovery"
)

// Messages shown when the password recovery endpoint answers without one.
const (
	RecoverySentMessage   = "Password recovery email sent."
	RecoveryFailedMessage = "Failed to send password recovery email."
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body of a successful login or refresh.
// Servers return the bearer token as either access_token or token.
type LoginResponse struct {
	AccessToken *string `json:"access_token,omitempty"`
	Token       *string `json:"token,omitempty"`
	TokenType   string  `json:"token_type,omitempty"`
	ExpiresIn   int     `json:"expires_in,omitempty"`
}

// Credential returns access_token when set, otherwise token.
func (r LoginResponse) Credential() (string, error) {
	credential, ok := utils.FirstSet(r.AccessToken, r.Token)
	if !ok {
		return "", poserrors.ErrNoCredential
	}
	return credential, nil
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Role     string `json:"role,omitempty"`
}

type Auth struct {
	api Requester
}

func (a *Auth) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := a.api.Post(ctx, LoginPath, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tells the server to revoke the current token.
func (a *Auth) Logout(ctx context.Context) error {
	return a.api.Post(ctx, LogoutPath, nil, nil)
}

func (a *Auth) Refresh(ctx context.Context) (*LoginResponse, error) {
	var resp LoginResponse
	if err := a.api.Post(ctx, RefreshPath, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *Auth) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := a.api.Post(ctx, RegisterPath, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type PasswordRecoveryRequest struct {
	Email string `json:"email"`
}

// RecoverPassword asks the server to email a recovery link and returns the message to show.
func (a *Auth) RecoverPassword(ctx context.Context, email string) (string, error) {
	var resp struct {
		Message string `json:"message"`
	}
	if err := a.api.Post(ctx, PasswordRecoveryPath, PasswordRecoveryRequest{Email: email}, &resp); err != nil {
		return "", err
	}
	if resp.Message == "" {
		return RecoverySentMessage, nil
	}
	return resp.Message, nil
}
