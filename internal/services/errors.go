package services

import (
	"errors"

	"github.com/princeprakhar/partnerhub/internal/utils"
)

// Display defaults, shown when a failure carries no message of its own.
const (
	MsgSignupFailed         = "회원가입 실패"
	MsgLoginFailed          = "로그인에 실패했습니다."
	MsgFindIDFailed         = "아이디 찾기 실패"
	MsgResetRequestFailed   = "비밀번호 재설정 요청에 실패했습니다."
	MsgResetLinkInvalid     = "링크가 만료되었거나 유효하지 않습니다."
	MsgResetFailed          = "비밀번호 재설정에 실패했습니다."
	MsgStoreCreateFailed    = "가게 등록에 실패했습니다."
	MsgMainFailed           = "정보를 불러오지 못했습니다."
	MsgMyPageFailed         = "마이페이지 정보를 불러오지 못했습니다."
	MsgPostNotFound         = "존재하지 않는 게시글이거나 오류가 발생했습니다."
	MsgPostCreateFailed     = "업로드에 실패했습니다. 다시 시도해주세요."
	MsgPartnerRequestFailed = "제휴 요청 전송 중 문제가 발생했습니다."
)

// ErrNoStore is returned by page loaders when the store check failed and the
// user was sent to store creation.
var ErrNoStore = errors.New("no store registered for current user")

// ValidationError is a local form check failure. Message is ready for display.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// DisplayMessage formats any error from this package for the user: local
// validation messages as is, request failures through ExtractFirstError.
func DisplayMessage(err error, defaultMsg string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return utils.ExtractFirstError(err, defaultMsg)
}
