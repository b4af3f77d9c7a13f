package services

import (
	"context"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/internal/utils"
)

type StoreService struct {
	client *apiclient.Client
}

func NewStoreService(client *apiclient.Client) *StoreService {
	return &StoreService{client: client}
}

type StoreForm struct {
	Name          string `json:"name" validate:"required"`
	Description   string `json:"description"`
	Address       string `json:"address" validate:"required"`
	PhoneNumber   string `json:"phone_number" validate:"required"`
	AvailableTime string `json:"available_time" validate:"required"`
	Categories    []uint `json:"categories"`
}

var storeFieldLabels = map[string]string{
	"name":           "상호명",
	"address":        "주소",
	"phone_number":   "매장 연락처",
	"available_time": "연락 가능 시간",
}

// ToggleCategory adds id when absent and removes it when present.
func (f *StoreForm) ToggleCategory(id uint) {
	f.Categories = toggleID(f.Categories, id)
}

// Mine returns the caller's store. A 404 means no store exists yet.
func (s *StoreService) Mine(ctx context.Context) (*models.Store, error) {
	resp, err := s.client.Get(ctx, "/stores/me/", nil)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.Decode[models.Store](resp)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (s *StoreService) Create(ctx context.Context, form StoreForm) (*models.Store, error) {
	form.Name = utils.SanitizeString(form.Name)
	form.Address = utils.SanitizeString(form.Address)
	form.PhoneNumber = utils.SanitizeString(form.PhoneNumber)
	form.AvailableTime = utils.SanitizeString(form.AvailableTime)
	if form.Categories == nil {
		form.Categories = []uint{}
	}
	if err := utils.ValidateStruct(form); err != nil {
		return nil, requiredFieldError(err, storeFieldLabels)
	}

	resp, err := s.client.Post(ctx, "/stores/", form)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.Decode[models.Store](resp)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func requiredFieldError(err error, labels map[string]string) error {
	field, _ := utils.FirstInvalidField(err)
	label, ok := labels[field]
	if !ok {
		label = field
	}
	return invalid(field, label+"을(를) 입력해주세요.")
}

func toggleID(ids []uint, id uint) []uint {
	for i, existing := range ids {
		if existing == id {
			out := make([]uint, 0, len(ids)-1)
			out = append(out, ids[:i]...)
			return append(out, ids[i+1:]...)
		}
	}
	return append(ids, id)
}
