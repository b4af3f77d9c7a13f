package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/guards"
	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

// Loader assembles the data each guarded page needs. Every load runs its own
// store check.
type Loader struct {
	client        *apiclient.Client
	Stores        *StoreService
	Posts         *PostService
	Notifications *NotificationService
}

func NewLoader(client *apiclient.Client) *Loader {
	return &Loader{
		client:        client,
		Stores:        NewStoreService(client),
		Posts:         NewPostService(client),
		Notifications: NewNotificationService(client),
	}
}

type MainPage struct {
	Store         *models.Store
	Posts         []models.Post
	Categories    []models.Category
	Notifications []models.Notification
	UnreadCount   int
}

type MyPage struct {
	Store      *models.Store
	Posts      []models.PostSummary
	Categories []models.Category
}

// CategoryNames maps ids onto category names, dropping unknown ids.
func (p *MyPage) CategoryNames(ids []uint) []string {
	byID := make(map[uint]string, len(p.Categories))
	for _, c := range p.Categories {
		byID[c.ID] = c.Name
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

func (l *Loader) storeCheck(ctx context.Context, nav guards.Navigator) error {
	if !guards.NewStoreCheck(l.client, nav).Run(ctx) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return ErrNoStore
	}
	return nil
}

// LoadMain fetches everything the listing page shows. Store, posts,
// categories and notifications load together; a single failure fails the
// page and no partial result is returned.
func (l *Loader) LoadMain(ctx context.Context, nav guards.Navigator) (*MainPage, error) {
	if err := l.storeCheck(ctx, nav); err != nil {
		return nil, err
	}

	var page MainPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Store, err = l.Stores.Mine(gctx)
		return err
	})
	g.Go(func() (err error) {
		page.Posts, err = l.Posts.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		page.Categories, err = l.Posts.Categories(gctx)
		return err
	})
	g.Go(func() (err error) {
		page.Notifications, err = l.Notifications.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	count, err := l.Notifications.UnreadCount(ctx)
	if err != nil {
		logger.Warn("failed to fetch unread count: ", err)
	}
	page.UnreadCount = count
	return &page, nil
}

func (l *Loader) LoadMyPage(ctx context.Context, nav guards.Navigator) (*MyPage, error) {
	if err := l.storeCheck(ctx, nav); err != nil {
		return nil, err
	}

	var page MyPage
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		page.Store, err = l.Stores.Mine(gctx)
		return err
	})
	g.Go(func() (err error) {
		page.Posts, err = l.Posts.Mine(gctx)
		return err
	})
	g.Go(func() (err error) {
		page.Categories, err = l.Posts.Categories(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &page, nil
}

func (l *Loader) LoadPostDetail(ctx context.Context, nav guards.Navigator, id uint) (*models.Post, error) {
	if err := l.storeCheck(ctx, nav); err != nil {
		return nil, err
	}
	return l.Posts.Get(ctx, id)
}
