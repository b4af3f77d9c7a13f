package apiclient

import (
	"net/http"

	"github.com/princeprakhar/partnerhub/pkg/logger"
)

const bearerPrefix = "Bearer "

// authorize reads the access token synchronously and attaches it when present.
// A store that cannot be read is treated as holding no token.
func (c *Client) authorize(req *http.Request) {
	pair, err := c.creds.Load()
	if err != nil {
		logger.Warn("credential store unreadable, sending request without token: ", err)
		return
	}
	if pair.AccessToken == "" {
		return
	}
	req.Header.Set("Authorization", bearerPrefix+pair.AccessToken)
}
