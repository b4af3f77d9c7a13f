package services

import (
	"context"
	"fmt"
	"net/url"
	"unicode/utf8"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/types"
	"github.com/princeprakhar/partnerhub/internal/utils"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

const minPasswordLength = 6

type AuthService struct {
	client *apiclient.Client
}

func NewAuthService(client *apiclient.Client) *AuthService {
	return &AuthService{client: client}
}

type SignupRequest struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	ImageURL    string `json:"image_url"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FindIDRequest struct {
	Email       string `json:"email" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required"`
}

type ResetConfirmRequest struct {
	UID             string `json:"uid"`
	Token           string `json:"token"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"-"`
}

// Signup registers an account; field errors come back from the API. Returns
// the API's success message. When the response carries a token pair it is
// stored, so the new account is logged in.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (string, error) {
	resp, err := s.client.Post(ctx, "/auth/signup/", req)
	if err != nil {
		return "", err
	}
	env, err := apiclient.Decode[types.LoginResult](resp)
	if err != nil {
		return "", err
	}
	if env.Data.AccessToken != "" {
		if err := s.client.Credentials().Save(env.Data.TokenPair); err != nil {
			return "", fmt.Errorf("failed to store credentials: %w", err)
		}
		logger.Info("signed up and logged in as ", env.Data.Username)
	}
	return env.Message, nil
}

// Login exchanges username and password for a token pair and stores it.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*types.LoginResult, error) {
	req.Username = utils.SanitizeString(req.Username)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, invalid("username", "아이디와 비밀번호를 모두 입력해주세요.")
	}

	resp, err := s.client.Post(ctx, "/auth/login/", req)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.Decode[types.LoginResult](resp)
	if err != nil {
		return nil, err
	}
	if env.Data.AccessToken == "" {
		return nil, fmt.Errorf("login response carried no access token")
	}

	if err := s.client.Credentials().Save(env.Data.TokenPair); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}
	logger.Info("logged in as ", env.Data.Username)
	return &env.Data, nil
}

// Logout clears both stored tokens. No request is made.
func (s *AuthService) Logout() error {
	return s.client.Credentials().Clear()
}

// HasSession reports whether an access token is stored. It does not verify it.
func (s *AuthService) HasSession() bool {
	pair, err := s.client.Credentials().Load()
	return err == nil && pair.AccessToken != ""
}

// FindID returns the masked username registered for email and phone number.
func (s *AuthService) FindID(ctx context.Context, req FindIDRequest) (string, error) {
	req.Email = utils.SanitizeString(req.Email)
	req.PhoneNumber = utils.SanitizeString(req.PhoneNumber)
	if err := utils.ValidateStruct(req); err != nil {
		return "", invalid("email", "이메일과 전화번호를 모두 입력해주세요.")
	}

	resp, err := s.client.Post(ctx, "/auth/find-id/", req)
	if err != nil {
		return "", err
	}
	env, err := apiclient.Decode[struct {
		Username string `json:"username"`
	}](resp)
	if err != nil {
		return "", err
	}
	return env.Data.Username, nil
}

// RequestPasswordReset asks the API to mail a reset link.
func (s *AuthService) RequestPasswordReset(ctx context.Context, req PasswordResetRequest) (string, error) {
	req.Email = utils.SanitizeString(req.Email)
	if err := utils.ValidateStruct(req); err != nil {
		return "", invalid("email", "이메일을 입력해주세요.")
	}

	resp, err := s.client.Post(ctx, "/auth/reset-password-request/", req)
	if err != nil {
		return "", err
	}
	return resp.Message(), nil
}

// ValidateResetLink checks a uid/token pair taken from a reset link.
func (s *AuthService) ValidateResetLink(ctx context.Context, uid, token string) (string, error) {
	if uid == "" || token == "" {
		return "", invalid("token", "잘못된 접근입니다.")
	}

	resp, err := s.client.Get(ctx, "/auth/reset-password-validate/", url.Values{
		"uid":   {uid},
		"token": {token},
	})
	if err != nil {
		return "", err
	}
	return resp.Message(), nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, req ResetConfirmRequest) (string, error) {
	switch {
	case req.UID == "" || req.Token == "":
		return "", invalid("token", "잘못된 접근입니다.")
	case utils.IsBlank(req.NewPassword):
		return "", invalid("new_password", "새 비밀번호를 입력해주세요.")
	case utf8.RuneCountInString(req.NewPassword) < minPasswordLength:
		return "", invalid("new_password", "비밀번호는 최소 6자 이상이어야 합니다.")
	case req.NewPassword != req.ConfirmPassword:
		return "", invalid("confirm_password", "비밀번호가 일치하지 않습니다.")
	}

	resp, err := s.client.Post(ctx, "/auth/reset-password-confirm/", req)
	if err != nil {
		return "", err
	}
	return resp.Message(), nil
}
