package guards

import (
	"context"
	"sync"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

const myStorePath = "/stores/me/"

// StoreCheck asks whether the current identity owns a store and sends the
// user to the store creation flow when it does not. Results are not shared
// between instances; every guarded page builds its own.
type StoreCheck struct {
	client *apiclient.Client
	nav    Navigator

	once    sync.Once
	mu      sync.RWMutex
	checked bool
}

func NewStoreCheck(client *apiclient.Client, nav Navigator) *StoreCheck {
	return &StoreCheck{client: client, nav: nav}
}

// Run issues the lookup once and reports whether a store exists. On failure
// it navigates to RouteStoreCreate exactly once; a cancelled ctx suppresses
// the navigation.
func (s *StoreCheck) Run(ctx context.Context) bool {
	s.once.Do(func() {
		_, err := s.client.Get(ctx, myStorePath, nil)
		if err == nil {
			s.mu.Lock()
			s.checked = true
			s.mu.Unlock()
			return
		}
		if ctx.Err() != nil {
			return
		}
		logger.Debug("store lookup failed, redirecting to store creation: ", err)
		if s.nav != nil {
			s.nav.Navigate(RouteStoreCreate)
		}
	})
	return s.Checked()
}

func (s *StoreCheck) Checked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checked
}
