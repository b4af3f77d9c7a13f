package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/internal/utils"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

// MaxPostImages is how many selected files a post keeps; extras are dropped.
const MaxPostImages = 5

type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// LoadUploadFile reads a local file for upload, deriving its content type
// from the extension.
func LoadUploadFile(path string) (UploadFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UploadFile{}, fmt.Errorf("failed to read image %s: %w", path, err)
	}
	name := filepath.Base(path)
	return UploadFile{
		Name:        name,
		ContentType: getContentTypeFromExtension(name),
		Data:        data,
	}, nil
}

func (f UploadFile) contentType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return getContentTypeFromExtension(f.Name)
}

type PostForm struct {
	Title                 string `json:"title" validate:"required"`
	StoreName             string `json:"store_name" validate:"required"`
	Description           string `json:"description" validate:"required"`
	Address               string `json:"address" validate:"required"`
	PhoneNumber           string `json:"phone_number" validate:"required"`
	AvailableTime         string `json:"available_time" validate:"required"`
	ExtraMessage          string `json:"extra_message"`
	PartnershipCategories []uint `json:"partnership_categories"`
	StoreCategories       []uint `json:"store_categories,omitempty"`
}

var postFieldLabels = map[string]string{
	"title":          "제목",
	"store_name":     "상호명",
	"description":    "소개",
	"address":        "주소",
	"phone_number":   "연락처",
	"available_time": "연락 가능 시간",
}

func (f *PostForm) ToggleCategory(id uint) {
	f.PartnershipCategories = toggleID(f.PartnershipCategories, id)
}

type imageRef struct {
	ImageURL    string `json:"image_url"`
	IsThumbnail bool   `json:"is_thumbnail"`
}

type createPostRequest struct {
	PostForm
	Images []imageRef `json:"images"`
}

// Create uploads the images and then submits the post:
//
//  1. request an upload target for every file, concurrently;
//  2. PUT every file to its target, concurrently;
//  3. create the post with the resulting image URLs, the first as thumbnail.
//
// Each phase is all-or-nothing. A failure in one phase means later phases
// never start.
func (s *PostService) Create(ctx context.Context, form PostForm, files []UploadFile) (*models.Post, error) {
	if len(files) > MaxPostImages {
		logger.Warn(fmt.Sprintf("%d images selected, keeping the first %d", len(files), MaxPostImages))
		files = files[:MaxPostImages]
	}
	if err := validatePost(&form, files); err != nil {
		return nil, err
	}

	targets, err := s.requestTargets(ctx, files)
	if err != nil {
		return nil, err
	}
	if err := s.uploadAll(ctx, files, targets); err != nil {
		return nil, err
	}

	req := createPostRequest{PostForm: form, Images: make([]imageRef, len(targets))}
	for i, t := range targets {
		req.Images[i] = imageRef{ImageURL: t.ImageURL, IsThumbnail: i == 0}
	}

	resp, err := s.client.Post(ctx, "/posts/", req)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.Decode[models.Post](resp)
	if err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Post %d created with %d images", env.Data.ID, len(req.Images)))
	return &env.Data, nil
}

// validatePost runs the checks in the order the form shows them: required
// text fields, then images, then categories.
func validatePost(form *PostForm, files []UploadFile) error {
	form.Title = utils.SanitizeString(form.Title)
	form.StoreName = utils.SanitizeString(form.StoreName)
	form.Address = utils.SanitizeString(form.Address)
	form.PhoneNumber = utils.SanitizeString(form.PhoneNumber)
	form.AvailableTime = utils.SanitizeString(form.AvailableTime)
	if utils.IsBlank(form.Description) {
		form.Description = ""
	}
	if err := utils.ValidateStruct(form); err != nil {
		return requiredFieldError(err, postFieldLabels)
	}

	if len(files) == 0 {
		return invalid("images", "이미지는 최소 1장 이상 업로드해야 합니다.")
	}
	for _, f := range files {
		if !isValidImageType(f.contentType()) {
			return invalid("images", fmt.Sprintf("이미지 파일만 업로드할 수 있습니다: %s", f.Name))
		}
	}
	if len(form.PartnershipCategories) == 0 {
		return invalid("partnership_categories", "제휴 카테고리를 최소 1개 이상 선택해주세요.")
	}
	return nil
}

func (s *PostService) requestTargets(ctx context.Context, files []UploadFile) ([]models.UploadTarget, error) {
	targets := make([]models.UploadTarget, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			t, err := s.RequestUploadTarget(gctx, f.Name, f.contentType())
			if err != nil {
				return fmt.Errorf("failed to request upload URL for %s: %w", f.Name, err)
			}
			targets[i] = *t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return targets, nil
}

func (s *PostService) uploadAll(ctx context.Context, files []UploadFile, targets []models.UploadTarget) error {
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := s.client.Upload(gctx, targets[i].UploadURL, f.contentType(), f.Data); err != nil {
				return fmt.Errorf("failed to upload %s: %w", f.Name, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func isValidImageType(contentType string) bool {
	validTypes := []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/webp",
		"image/bmp",
		"image/tiff",
	}

	for _, validType := range validTypes {
		if strings.EqualFold(contentType, validType) {
			return true
		}
	}
	return false
}

func getContentTypeFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".tiff", ".tif":
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}
