package handlers

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/princeprakhar/partnerhub/internal/database"
	"github.com/princeprakhar/partnerhub/internal/types"
	"github.com/princeprakhar/partnerhub/internal/utils"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

const msgBadCredentials = "아이디 또는 비밀번호가 올바르지 않습니다."

var duplicateMessages = map[string]string{
	"username":     "이미 사용 중인 사용자명입니다.",
	"email":        "이미 등록된 이메일입니다.",
	"phone_number": "이미 등록된 전화번호입니다.",
}

type AuthHandler struct {
	db        *database.DB
	jwtSecret string
}

func NewAuthHandler(db *database.DB, jwtSecret string) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret}
}

type signupRequest struct {
	Username    string `json:"username" validate:"required,max=30"`
	Name        string `json:"name" validate:"required,max=50"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Password    string `json:"password" validate:"required"`
	ImageURL    string `json:"image_url" validate:"required,url"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type findIDRequest struct {
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

// bindJSON decodes and validates the body, answering 400 itself on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.SendFieldErrors(c, types.FieldErrors{"non_field_errors": {"잘못된 요청 형식입니다."}})
		return false
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.SendFieldErrors(c, utils.FieldErrors(err))
		return false
	}
	return true
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req) {
		return
	}

	user := database.User{
		Username:    utils.SanitizeString(req.Username),
		Name:        utils.SanitizeString(req.Name),
		Email:       utils.SanitizeString(req.Email),
		PhoneNumber: utils.SanitizeString(req.PhoneNumber),
		ImageURL:    req.ImageURL,
	}
	taken, err := h.db.UserConflicts(user)
	if err != nil {
		utils.SendInternalError(c, "회원가입 처리 중 오류가 발생했습니다.", err)
		return
	}
	if len(taken) > 0 {
		fields := types.FieldErrors{}
		for _, field := range taken {
			fields[field] = []string{duplicateMessages[field]}
		}
		utils.SendFieldErrors(c, fields)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.SendInternalError(c, "회원가입 처리 중 오류가 발생했습니다.", err)
		return
	}

	user.PasswordHash = string(hash)
	created, err := h.db.CreateUser(user)
	if errors.Is(err, database.ErrDuplicate) {
		utils.SendFieldErrors(c, types.FieldErrors{"username": {duplicateMessages["username"]}})
		return
	}
	if err != nil {
		utils.SendInternalError(c, "회원가입 처리 중 오류가 발생했습니다.", err)
		return
	}

	logger.Info("User signed up: ", created.Username)
	utils.SendCreated(c, "회원가입 성공", nil)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.db.UserByUsername(req.Username)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.SendError(c, http.StatusUnauthorized, msgBadCredentials)
		return
	}

	pair, err := utils.GenerateTokenPair(user.Profile(), h.jwtSecret)
	if err != nil {
		utils.SendInternalError(c, "토큰 발급에 실패했습니다.", err)
		return
	}

	utils.SendSuccess(c, "로그인에 성공했습니다.", types.LoginResult{
		TokenPair:  *pair,
		Username:   user.Username,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.db.UserByID(c.GetUint("user_id"))
	if err != nil {
		utils.SendUnauthorized(c, "사용자를 찾을 수 없습니다.")
		return
	}
	utils.SendSuccess(c, "현재 로그인한 사용자 정보입니다.", user.Profile())
}

func (h *AuthHandler) FindID(c *gin.Context) {
	var req findIDRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.db.UserByEmailAndPhone(utils.SanitizeString(req.Email), utils.SanitizeString(req.PhoneNumber))
	if err != nil {
		utils.SendFieldErrors(c, types.FieldErrors{"non_field_errors": {"일치하는 사용자 정보가 없습니다."}})
		return
	}
	utils.SendSuccess(c, "일치하는 계정이 확인되었습니다.", gin.H{"username": maskUsername(user.Username)})
}

// maskUsername keeps the first two characters (one for short names) and
// stars the rest.
func maskUsername(username string) string {
	keep := 2
	if utf8.RuneCountInString(username) <= 2 {
		keep = 1
	}
	out := make([]rune, 0, len(username))
	for i, r := range []rune(username) {
		if i < keep {
			out = append(out, r)
		} else {
			out = append(out, '*')
		}
	}
	return string(out)
}
