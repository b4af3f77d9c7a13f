package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/partnerhub/internal/database"
	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/internal/types"
	"github.com/princeprakhar/partnerhub/internal/utils"
)

type NotificationHandler struct {
	db *database.DB
}

func NewNotificationHandler(db *database.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

type partnerRequest struct {
	Post    uint   `json:"post" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// List answers with a bare array, as a generic list view does.
func (h *NotificationHandler) List(c *gin.Context) {
	notes, err := h.db.Notifications(c.GetUint("user_id"))
	if err != nil {
		utils.SendInternalError(c, "알림을 불러오지 못했습니다.", err)
		return
	}
	out := make([]models.Notification, len(notes))
	for i, n := range notes {
		out[i] = n.Model()
	}
	c.JSON(http.StatusOK, out)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.db.UnreadCount(c.GetUint("user_id"))
	if err != nil {
		utils.SendInternalError(c, "알림 수를 불러오지 못했습니다.", err)
		return
	}
	utils.SendSuccess(c, "안읽은 알림 수를 불러왔습니다.", models.UnreadCount{UnreadCount: count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendNotFound(c, "찾을 수 없습니다.")
		return
	}
	err = h.db.MarkRead(c.GetUint("user_id"), uint(id))
	if errors.Is(err, database.ErrNotFound) {
		utils.SendNotFound(c, "찾을 수 없습니다.")
		return
	}
	if err != nil {
		utils.SendInternalError(c, "알림 처리 중 오류가 발생했습니다.", err)
		return
	}
	utils.SendSuccess(c, "알림을 읽음 처리했습니다.", nil)
}

// PartnerRequest answers with the bare created object, as a generic create
// view does. Validation failures keep the wrapped shape.
func (h *NotificationHandler) PartnerRequest(c *gin.Context) {
	var req partnerRequest
	if !bindJSON(c, &req) {
		return
	}

	_, err := h.db.CreatePartnerRequest(c.GetUint("user_id"), req.Post, req.Message)
	switch {
	case errors.Is(err, database.ErrDuplicate):
		c.JSON(http.StatusBadRequest, types.Envelope[types.FieldErrors]{
			Success: false,
			Message: "이미 이 게시글에 제휴 요청을 보냈습니다.",
			Data:    types.FieldErrors{"message": {"이미 이 게시글에 제휴 요청을 보냈습니다."}},
		})
		return
	case errors.Is(err, database.ErrNotFound):
		utils.SendFieldErrors(c, types.FieldErrors{"post": {invalidPK(req.Post)}})
		return
	case err != nil:
		utils.SendInternalError(c, "제휴 요청 처리 중 오류가 발생했습니다.", err)
		return
	}

	c.JSON(http.StatusCreated, models.PartnerRequest{Post: req.Post, Message: req.Message})
}
