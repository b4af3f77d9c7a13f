package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/internal/utils"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

type NotificationService struct {
	client *apiclient.Client
}

func NewNotificationService(client *apiclient.Client) *NotificationService {
	return &NotificationService{client: client}
}

func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	resp, err := s.client.Get(ctx, "/notifications/", nil)
	if err != nil {
		return nil, err
	}
	env, err := apiclient.DecodeList[models.Notification](resp)
	if err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context) (int, error) {
	resp, err := s.client.Get(ctx, "/notifications/unread-count/", nil)
	if err != nil {
		return 0, err
	}
	env, err := apiclient.Decode[models.UnreadCount](resp)
	if err != nil {
		return 0, err
	}
	return env.Data.UnreadCount, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uint) error {
	_, err := s.client.Patch(ctx, fmt.Sprintf("/notifications/%d/read/", id), nil)
	return err
}

// SendPartnerRequest sends message to the author of postID.
func (s *NotificationService) SendPartnerRequest(ctx context.Context, postID uint, message string) (*models.PartnerRequest, error) {
	if utils.IsBlank(message) {
		return nil, invalid("message", "제휴 요청 메시지를 입력해주세요.")
	}

	resp, err := s.client.Post(ctx, "/notifications/partner-request/", models.PartnerRequest{
		Post:    postID,
		Message: message,
	})
	if err != nil {
		return nil, err
	}
	env, err := apiclient.Decode[models.PartnerRequest](resp)
	if err != nil {
		return nil, err
	}
	logger.Info(fmt.Sprintf("Partner request sent for post %d", postID))
	return &env.Data, nil
}

// NotificationFeed holds the notification list shown in the dropdown along
// with the unread count. The count always comes from the API and is never
// derived from the local list.
type NotificationFeed struct {
	svc *NotificationService

	mu     sync.RWMutex
	items  []models.Notification
	unread int
}

func NewNotificationFeed(svc *NotificationService) *NotificationFeed {
	return &NotificationFeed{svc: svc}
}

// Load replaces the local list and refetches the unread count.
func (f *NotificationFeed) Load(ctx context.Context) error {
	items, err := f.svc.List(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
	return f.RefreshUnread(ctx)
}

// Set replaces the local list without a request.
func (f *NotificationFeed) Set(items []models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = items
}

func (f *NotificationFeed) RefreshUnread(ctx context.Context) error {
	count, err := f.svc.UnreadCount(ctx)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.unread = count
	f.mu.Unlock()
	return nil
}

// MarkRead marks one notification read on the API, mirrors it locally and
// refetches the unread count. Local state is untouched if the PATCH fails.
func (f *NotificationFeed) MarkRead(ctx context.Context, id uint) error {
	if err := f.svc.MarkRead(ctx, id); err != nil {
		return err
	}

	f.mu.Lock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].IsRead = true
		}
	}
	f.mu.Unlock()

	return f.RefreshUnread(ctx)
}

// Items returns a copy of the local list.
func (f *NotificationFeed) Items() []models.Notification {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out
}

func (f *NotificationFeed) Unread() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.unread
}
