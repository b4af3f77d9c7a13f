package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresTokenPair(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/auth/login/", http.StatusOK,
		`{"success":true,"message":"로그인 성공","data":{"access":"a1","refresh":"r1","username":"kim","role":"user","is_verified":true}}`)
	client := api.client(t, false)
	svc := NewAuthService(client)

	res, err := svc.Login(context.Background(), LoginRequest{Username: " kim ", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "kim", res.Username)
	assert.True(t, res.IsVerified)
	assert.JSONEq(t, `{"username":"kim","password":"pw"}`, api.lastBody(http.MethodPost, "/api/v1/auth/login/"))

	pair, err := client.Credentials().Load()
	require.NoError(t, err)
	assert.Equal(t, "a1", pair.AccessToken)
	assert.Equal(t, "r1", pair.RefreshToken)
	assert.True(t, svc.HasSession())

	require.NoError(t, svc.Logout())
	assert.False(t, svc.HasSession())
}

func TestLoginRequiresBothFields(t *testing.T) {
	api := newFakeAPI(t)
	svc := NewAuthService(api.client(t, false))

	_, err := svc.Login(context.Background(), LoginRequest{Username: "kim"})
	require.Error(t, err)
	assert.Equal(t, "아이디와 비밀번호를 모두 입력해주세요.", DisplayMessage(err, MsgLoginFailed))
	assert.Zero(t, api.count(http.MethodPost, "/api/v1/auth/login/"))
}

func TestLoginFailureShowsServerMessage(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/auth/login/", http.StatusBadRequest,
		`{"success":false,"message":"아이디 또는 비밀번호가 올바르지 않습니다.","data":null}`)
	client := api.client(t, false)

	_, err := NewAuthService(client).Login(context.Background(), LoginRequest{Username: "kim", Password: "bad"})
	require.Error(t, err)
	assert.Equal(t, "아이디 또는 비밀번호가 올바르지 않습니다.", DisplayMessage(err, MsgLoginFailed))

	pair, _ := client.Credentials().Load()
	assert.Empty(t, pair.AccessToken)
}

func TestSignupFieldErrorIsDisplayed(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/auth/signup/", http.StatusBadRequest,
		`{"success":false,"message":"입력값을 확인해주세요.","data":{"username":["이미 사용 중인 아이디입니다."],"email":["올바른 이메일을 입력하세요."]}}`)

	_, err := NewAuthService(api.client(t, false)).Signup(context.Background(), SignupRequest{Username: "kim"})
	require.Error(t, err)
	assert.Equal(t, "이미 사용 중인 아이디입니다.", DisplayMessage(err, MsgSignupFailed))
}

func TestSignupStoresReturnedTokenPair(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/auth/signup/", http.StatusCreated,
		`{"success":true,"message":"회원가입 성공","data":{"access":"a2","refresh":"r2","username":"kim"}}`)
	client := api.client(t, false)

	msg, err := NewAuthService(client).Signup(context.Background(), SignupRequest{Username: "kim"})
	require.NoError(t, err)
	assert.Equal(t, "회원가입 성공", msg)

	pair, err := client.Credentials().Load()
	require.NoError(t, err)
	assert.Equal(t, "a2", pair.AccessToken)
	assert.Equal(t, "r2", pair.RefreshToken)
}

func TestSignupWithoutTokenPairKeepsSessionEmpty(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/auth/signup/", http.StatusCreated,
		`{"success":true,"message":"회원가입 성공","data":null}`)
	client := api.client(t, false)
	svc := NewAuthService(client)

	msg, err := svc.Signup(context.Background(), SignupRequest{Username: "kim"})
	require.NoError(t, err)
	assert.Equal(t, "회원가입 성공", msg)
	assert.False(t, svc.HasSession())
}

func TestFindIDReturnsMaskedUsername(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/auth/find-id/", http.StatusOK,
		`{"success":true,"message":"ok","data":{"username":"ki***"}}`)
	svc := NewAuthService(api.client(t, false))

	name, err := svc.FindID(context.Background(), FindIDRequest{Email: "kim@example.com", PhoneNumber: "01012345678"})
	require.NoError(t, err)
	assert.Equal(t, "ki***", name)

	_, err = svc.FindID(context.Background(), FindIDRequest{Email: "kim@example.com"})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, api.count(http.MethodPost, "/api/v1/auth/find-id/"))
}

func TestValidateResetLinkNeedsUIDAndToken(t *testing.T) {
	api := newFakeAPI(t)
	api.handle(http.MethodGet, "/api/v1/auth/reset-password-validate/", func(r *http.Request, _ []byte) reply {
		assert.Equal(t, "MQ", r.URL.Query().Get("uid"))
		assert.Equal(t, "abc-123", r.URL.Query().Get("token"))
		return reply{http.StatusOK, `{"success":true,"message":"유효한 링크입니다.","data":null}`}
	})
	svc := NewAuthService(api.client(t, false))

	_, err := svc.ValidateResetLink(context.Background(), "", "abc-123")
	assert.Equal(t, "잘못된 접근입니다.", DisplayMessage(err, MsgResetLinkInvalid))

	msg, err := svc.ValidateResetLink(context.Background(), "MQ", "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "유효한 링크입니다.", msg)
}

func TestConfirmPasswordResetChecksLocally(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/auth/reset-password-confirm/", http.StatusOK,
		`{"success":true,"message":"비밀번호가 변경되었습니다.","data":null}`)
	svc := NewAuthService(api.client(t, false))
	ctx := context.Background()

	tests := []struct {
		name string
		req  ResetConfirmRequest
		want string
	}{
		{"missing token", ResetConfirmRequest{UID: "MQ", NewPassword: "secret1", ConfirmPassword: "secret1"}, "잘못된 접근입니다."},
		{"blank password", ResetConfirmRequest{UID: "MQ", Token: "t", NewPassword: "  "}, "새 비밀번호를 입력해주세요."},
		{"too short", ResetConfirmRequest{UID: "MQ", Token: "t", NewPassword: "abc", ConfirmPassword: "abc"}, "비밀번호는 최소 6자 이상이어야 합니다."},
		{"mismatch", ResetConfirmRequest{UID: "MQ", Token: "t", NewPassword: "secret1", ConfirmPassword: "secret2"}, "비밀번호가 일치하지 않습니다."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ConfirmPasswordReset(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, DisplayMessage(err, MsgResetFailed))
		})
	}
	assert.Zero(t, api.count(http.MethodPost, "/api/v1/auth/reset-password-confirm/"))

	msg, err := svc.ConfirmPasswordReset(ctx, ResetConfirmRequest{UID: "MQ", Token: "t", NewPassword: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "비밀번호가 변경되었습니다.", msg)
	assert.JSONEq(t, `{"uid":"MQ","token":"t","new_password":"secret1"}`,
		api.lastBody(http.MethodPost, "/api/v1/auth/reset-password-confirm/"))
}
