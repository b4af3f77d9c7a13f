package handlers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/princeprakhar/partnerhub/internal/database"
	"github.com/princeprakhar/partnerhub/internal/mailer"
	"github.com/princeprakhar/partnerhub/internal/types"
	"github.com/princeprakhar/partnerhub/internal/utils"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

const resetTokenTTL = time.Hour

type PasswordHandler struct {
	db      *database.DB
	mail    *mailer.EmailService
	baseURL string
}

func NewPasswordHandler(db *database.DB, mail *mailer.EmailService, baseURL string) *PasswordHandler {
	return &PasswordHandler{db: db, mail: mail, baseURL: baseURL}
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetConfirmRequest struct {
	UID         string `json:"uid" validate:"required"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

func encodeUID(id uint) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatUint(uint64(id), 10)))
}

func decodeUID(uid string) (uint, bool) {
	raw, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *PasswordHandler) ResetRequest(c *gin.Context) {
	var req resetRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.db.UserByEmail(utils.SanitizeString(req.Email))
	if err != nil {
		utils.SendFieldErrors(c, types.FieldErrors{"email": {"해당 이메일로 가입된 사용자가 없습니다."}})
		return
	}

	token, err := utils.GenerateRandomString(32)
	if err != nil {
		utils.SendInternalError(c, "비밀번호 재설정 요청 처리 중 오류가 발생했습니다.", err)
		return
	}
	if err := h.db.SaveResetToken(database.ResetToken{UserID: user.ID, Token: token, ExpiresAt: time.Now().Add(resetTokenTTL)}); err != nil {
		utils.SendInternalError(c, "비밀번호 재설정 요청 처리 중 오류가 발생했습니다.", err)
		return
	}

	link := fmt.Sprintf("%s/reset-password/confirm?%s", h.baseURL, url.Values{
		"uid":   {encodeUID(user.ID)},
		"token": {token},
	}.Encode())
	if err := h.mail.SendPasswordResetEmail(user.Email, link); err != nil {
		utils.SendInternalError(c, "이메일 전송에 실패했습니다.", err)
		return
	}

	logger.Info("Password reset link issued for user ", user.ID)
	utils.SendSuccess(c, "비밀번호 재설정 링크를 이메일로 전송했습니다.", nil)
}

func (h *PasswordHandler) checkToken(uid, token string) (uint, bool) {
	id, ok := decodeUID(uid)
	if !ok {
		return 0, false
	}
	if _, err := h.db.ResetToken(id, token); err != nil {
		return 0, false
	}
	return id, true
}

func (h *PasswordHandler) ResetValidate(c *gin.Context) {
	if _, ok := h.checkToken(c.Query("uid"), c.Query("token")); !ok {
		c.JSON(http.StatusBadRequest, types.Envelope[types.FieldErrors]{
			Success: false,
			Message: "유효하지 않은 링크입니다.",
			Data:    types.FieldErrors{"non_field_errors": {"토큰이 유효하지 않거나 만료되었습니다."}},
		})
		return
	}
	utils.SendSuccess(c, "유효한 링크입니다.", nil)
}

func (h *PasswordHandler) ResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if !bindJSON(c, &req) {
		return
	}

	id, ok := h.checkToken(req.UID, req.Token)
	if !ok {
		utils.SendFieldErrors(c, types.FieldErrors{"non_field_errors": {"토큰이 유효하지 않거나 만료되었습니다."}})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.SendInternalError(c, "비밀번호 변경 중 오류가 발생했습니다.", err)
		return
	}
	if err := h.db.SetPassword(id, string(hash)); err != nil {
		utils.SendInternalError(c, "비밀번호 변경 중 오류가 발생했습니다.", err)
		return
	}
	if err := h.db.DeleteResetToken(req.Token); err != nil {
		logger.Warn("failed to delete used reset token: ", err)
	}

	utils.SendSuccess(c, "비밀번호가 성공적으로 변경되었습니다.", nil)
}
