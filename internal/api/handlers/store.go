package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/partnerhub/internal/database"
	"github.com/princeprakhar/partnerhub/internal/types"
	"github.com/princeprakhar/partnerhub/internal/utils"
)

const msgNoStore = "가게 정보가 등록되어 있지 않습니다."

type StoreHandler struct {
	db *database.DB
}

func NewStoreHandler(db *database.DB) *StoreHandler {
	return &StoreHandler{db: db}
}

type storeRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	Description   string `json:"description"`
	Address       string `json:"address" validate:"required"`
	PhoneNumber   string `json:"phone_number" validate:"required,max=20"`
	AvailableTime string `json:"available_time" validate:"required"`
	Categories    []uint `json:"categories"`
}

func (h *StoreHandler) Create(c *gin.Context) {
	var req storeRequest
	if !bindJSON(c, &req) {
		return
	}
	categories, missing, err := h.db.CategoriesByID(req.Categories)
	if errors.Is(err, database.ErrNotFound) {
		utils.SendFieldErrors(c, types.FieldErrors{"categories": {invalidPK(missing)}})
		return
	}
	if err != nil {
		utils.SendInternalError(c, "가게 등록 중 오류가 발생했습니다.", err)
		return
	}

	store, err := h.db.CreateStore(database.Store{
		OwnerID:       c.GetUint("user_id"),
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		PhoneNumber:   req.PhoneNumber,
		AvailableTime: req.AvailableTime,
		Categories:    categories,
	})
	if errors.Is(err, database.ErrDuplicate) {
		utils.SendFieldErrors(c, types.FieldErrors{"non_field_errors": {"이미 가게를 등록했습니다."}})
		return
	}
	if err != nil {
		utils.SendInternalError(c, "가게 등록 중 오류가 발생했습니다.", err)
		return
	}

	utils.SendCreated(c, "가게 등록이 완료되었습니다.", store.Model())
}

func (h *StoreHandler) Mine(c *gin.Context) {
	store, err := h.db.StoreByOwner(c.GetUint("user_id"))
	if errors.Is(err, database.ErrNotFound) {
		utils.SendError(c, http.StatusNotFound, msgNoStore)
		return
	}
	if err != nil {
		utils.SendInternalError(c, "가게 정보를 불러오지 못했습니다.", err)
		return
	}
	utils.SendSuccess(c, "가게 정보를 불러왔습니다.", store.Model())
}

func invalidPK(id uint) string {
	return fmt.Sprintf("유효하지 않은 pk \"%d\" - 객체가 존재하지 않습니다.", id)
}
