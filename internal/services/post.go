package services

import (
	"context"
	"fmt"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/models"
)

type PostService struct {
	client *apiclient.Client
}

func NewPostService(client *apiclient.Client) *PostService {
	return &PostService{client: client}
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	resp, err := s.client.Get(ctx, "/posts/", nil)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.DecodeList[models.Post](resp)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	resp, err := s.client.Get(ctx, fmt.Sprintf("/posts/%d/", id), nil)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.Decode[models.Post](resp)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func (s *PostService) Categories(ctx context.Context) ([]models.Category, error) {
	resp, err := s.client.Get(ctx, "/posts/categories/", nil)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.DecodeList[models.Category](resp)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// Mine lists the caller's own posts in summary form.
func (s *PostService) Mine(ctx context.Context) ([]models.PostSummary, error) {
	resp, err := s.client.Get(ctx, "/posts/myposts/", nil)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.DecodeList[models.PostSummary](resp)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

// RequestUploadTarget asks for a pre-signed PUT URL for one file.
func (s *PostService) RequestUploadTarget(ctx context.Context, filename, contentType string) (*models.UploadTarget, error) {
	resp, err := s.client.Post(ctx, "/posts/image-upload/", map[string]string{
		"filename":     filename,
		"content_type": contentType,
	})
	if err != nil {
		return nil, err
	}
	env, err := apiclient.Decode[models.UploadTarget](resp)
	if err != nil {
		return nil, err
	}
	if env.Data.UploadURL == "" {
		return nil, fmt.Errorf("upload target for %s has no upload URL", filename)
	}
	return &env.Data, nil
}
