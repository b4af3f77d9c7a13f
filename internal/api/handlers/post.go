package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/princeprakhar/partnerhub/internal/database"
	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/internal/storage"
	"github.com/princeprakhar/partnerhub/internal/types"
	"github.com/princeprakhar/partnerhub/internal/utils"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

type PostHandler struct {
	db      *database.DB
	storage *storage.S3Service
}

func NewPostHandler(db *database.DB, s3Service *storage.S3Service) *PostHandler {
	return &PostHandler{db: db, storage: s3Service}
}

type imageInput struct {
	ImageURL    string `json:"image_url" validate:"required"`
	IsThumbnail bool   `json:"is_thumbnail"`
}

type postRequest struct {
	Title                 string       `json:"title" validate:"required,max=100"`
	StoreName             string       `json:"store_name" validate:"required,max=100"`
	Description           string       `json:"description" validate:"required"`
	Address               string       `json:"address" validate:"required"`
	PhoneNumber           string       `json:"phone_number" validate:"required,max=20"`
	AvailableTime         string       `json:"available_time" validate:"required"`
	StoreCategories       []uint       `json:"store_categories"`
	PartnershipCategories []uint       `json:"partnership_categories" validate:"required,min=1"`
	ExtraMessage          string       `json:"extra_message"`
	Images                []imageInput `json:"images" validate:"dive"`
}

type uploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.db.Posts(0)
	if err != nil {
		utils.SendInternalError(c, "게시글 목록을 불러오지 못했습니다.", err)
		return
	}
	out := make([]models.Post, len(posts))
	for i, p := range posts {
		out[i] = p.Model()
	}
	utils.SendSuccess(c, "게시글 목록 조회 성공", out)
}

func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.SendNotFound(c, "찾을 수 없습니다.")
		return
	}
	post, err := h.db.ActivePost(uint(id))
	if errors.Is(err, database.ErrNotFound) {
		utils.SendNotFound(c, "찾을 수 없습니다.")
		return
	}
	if err != nil {
		utils.SendInternalError(c, "게시글을 불러오지 못했습니다.", err)
		return
	}
	utils.SendSuccess(c, "게시글 상세 조회 성공", post.Model())
}

func (h *PostHandler) Categories(c *gin.Context) {
	cats, err := h.db.Categories()
	if err != nil {
		utils.SendInternalError(c, "카테고리 목록을 불러오지 못했습니다.", err)
		return
	}
	out := make([]models.Category, len(cats))
	for i, cat := range cats {
		out[i] = cat.Model()
	}
	utils.SendSuccess(c, "제휴 카테고리 목록 조회 성공", out)
}

func (h *PostHandler) Mine(c *gin.Context) {
	posts, err := h.db.Posts(c.GetUint("user_id"))
	if err != nil {
		utils.SendInternalError(c, "게시글 목록을 불러오지 못했습니다.", err)
		return
	}
	out := make([]models.PostSummary, len(posts))
	for i, p := range posts {
		out[i] = models.PostSummary{ID: p.ID, Title: p.Title, CreatedAt: p.CreatedAt}
	}
	utils.SendSuccess(c, "게시글 목록을 성공적으로 불러왔습니다.", out)
}

func (h *PostHandler) ImageUpload(c *gin.Context) {
	var req uploadRequest
	_ = c.ShouldBindJSON(&req)
	if req.Filename == "" || req.ContentType == "" {
		utils.SendValidationError(c, "filename과 content_type은 필수입니다.")
		return
	}

	target, err := h.storage.PresignUpload("posts", req.Filename, req.ContentType)
	if err != nil {
		utils.SendInternalError(c, "S3 URL 생성 중 오류 발생", err)
		return
	}
	utils.SendSuccess(c, "게시글 이미지 업로드 presigned URL 생성 성공", models.UploadTarget{
		UploadURL: target.UploadURL,
		ImageURL:  target.ImageURL,
	})
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}

	fields := types.FieldErrors{}
	storeCategories, missing, err := h.db.CategoriesByID(req.StoreCategories)
	if errors.Is(err, database.ErrNotFound) {
		fields["store_categories"] = []string{invalidPK(missing)}
	} else if err != nil {
		utils.SendInternalError(c, "게시글 작성 중 오류가 발생했습니다.", err)
		return
	}
	partnershipCategories, missing, err := h.db.CategoriesByID(req.PartnershipCategories)
	if errors.Is(err, database.ErrNotFound) {
		fields["partnership_categories"] = []string{invalidPK(missing)}
	} else if err != nil {
		utils.SendInternalError(c, "게시글 작성 중 오류가 발생했습니다.", err)
		return
	}
	if msg := h.checkImages(req.Images); msg != "" {
		fields["images"] = []string{msg}
	}
	if len(fields) > 0 {
		utils.SendFieldErrors(c, fields)
		return
	}

	images := make([]database.PostImage, len(req.Images))
	for i, img := range req.Images {
		images[i] = database.PostImage{ImageURL: img.ImageURL, IsThumbnail: img.IsThumbnail}
	}
	post, err := h.db.CreatePost(database.Post{
		AuthorID:              c.GetUint("user_id"),
		Author:                c.GetString("username"),
		Title:                 req.Title,
		StoreName:             req.StoreName,
		Description:           req.Description,
		Address:               req.Address,
		PhoneNumber:           req.PhoneNumber,
		AvailableTime:         req.AvailableTime,
		ExtraMessage:          req.ExtraMessage,
		StoreCategories:       storeCategories,
		PartnershipCategories: partnershipCategories,
		Images:                images,
	})
	if err != nil {
		utils.SendInternalError(c, "게시글 작성 중 오류가 발생했습니다.", err)
		return
	}

	logger.Info("Post created: ", post.ID)
	utils.SendStatus(c, http.StatusCreated, "게시글 작성 성공", post.Model())
}

// checkImages requires a non-empty list with exactly one thumbnail, every
// image already uploaded to sandbox storage.
func (h *PostHandler) checkImages(images []imageInput) string {
	if len(images) == 0 {
		return "이미지 리스트는 비워둘 수 없습니다."
	}
	thumbnails := 0
	for _, img := range images {
		if img.IsThumbnail {
			thumbnails++
		}
		key, ok := h.storage.KeyFromURL(img.ImageURL)
		if !ok {
			return "허용되지 않은 이미지 주소입니다."
		}
		if _, ok := h.storage.Get(key); !ok {
			return "업로드되지 않은 이미지입니다."
		}
	}
	if thumbnails != 1 {
		return "썸네일 이미지는 정확히 하나여야 합니다."
	}
	return ""
}
