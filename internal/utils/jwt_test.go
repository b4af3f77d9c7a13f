package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/partnerhub/internal/models"
)

func TestTokenPairRoundTrip(t *testing.T) {
	user := models.User{ID: 7, Username: "kim", Role: "user", IsVerified: true}
	pair, err := GenerateTokenPair(user, "secret")
	require.NoError(t, err)

	claims, err := ValidateToken(pair.AccessToken, AccessToken, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "kim", claims.Username)
	assert.True(t, claims.IsVerified)

	_, err = ValidateToken(pair.RefreshToken, AccessToken, "secret")
	assert.Error(t, err, "refresh token must not pass as access token")

	_, err = ValidateToken(pair.AccessToken, AccessToken, "other-secret")
	assert.Error(t, err)
}

func TestFieldErrorsUseJSONNames(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone_number" validate:"required"`
	}
	fields := FieldErrors(ValidateStruct(form{Email: "nope"}))
	assert.Equal(t, []string{"유효한 이메일 주소를 입력하십시오."}, fields["email"])
	assert.Equal(t, []string{"이 필드는 필수 항목입니다."}, fields["phone_number"])
}
