// Package guards holds the checks pages run on entry: whether the stored
// credential is still valid, and whether the user already owns a store.
package guards

import (
	"context"
	"sync"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/models"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

const identityPath = "/auth/me/"

type AuthState struct {
	Checked bool
	User    *models.User
}

// AuthCheck verifies the stored access token once per instance.
type AuthCheck struct {
	client *apiclient.Client

	once  sync.Once
	mu    sync.RWMutex
	state AuthState
}

func NewAuthCheck(client *apiclient.Client) *AuthCheck {
	return &AuthCheck{client: client}
}

// Run performs the check on first call and returns the cached state after.
// Without a stored token no request is made. A failed identity request clears
// both tokens, unless ctx was cancelled first.
func (a *AuthCheck) Run(ctx context.Context) AuthState {
	a.once.Do(func() {
		a.finish(a.check(ctx))
	})
	return a.State()
}

func (a *AuthCheck) check(ctx context.Context) *models.User {
	creds := a.client.Credentials()
	pair, err := creds.Load()
	if err != nil || pair.AccessToken == "" {
		return nil
	}

	resp, err := a.client.Get(ctx, identityPath, nil)
	if err != nil {
		if ctx.Err() != nil {
			logger.Debug("auth check cancelled, keeping credentials")
			return nil
		}
		logger.Warn("identity check failed, clearing credentials: ", err)
		if cerr := creds.Clear(); cerr != nil {
			logger.Error("failed to clear credentials: ", cerr)
		}
		return nil
	}

	env, err := apiclient.Decode[models.User](resp)
	if err != nil {
		logger.Warn("identity payload unreadable: ", err)
		return nil
	}
	return &env.Data
}

func (a *AuthCheck) finish(user *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.state = AuthState{Checked: true, User: user}
}

func (a *AuthCheck) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

func (a *AuthCheck) Checked() bool {
	return a.State().Checked
}

func (a *AuthCheck) User() *models.User {
	return a.State().User
}
