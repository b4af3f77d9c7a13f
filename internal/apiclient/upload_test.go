package apiclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/partnerhub/internal/credentials"
	"github.com/princeprakhar/partnerhub/internal/types"
)

func TestUploadNeverSendsBearer(t *testing.T) {
	srv, calls := newTestServer(t, http.StatusOK, ``)
	creds := credentials.NewMemoryStore()
	require.NoError(t, creds.Save(types.TokenPair{AccessToken: "secret"}))
	c, err := New(srv.URL+"/api/v1", creds)
	require.NoError(t, err)

	err = c.Upload(context.Background(), srv.URL+"/bucket/posts/a.png?X-Amz-Signature=abc", "image/png", []byte("png-bytes"))
	require.NoError(t, err)

	require.Len(t, calls.list(), 1)
	call := calls.list()[0]
	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/bucket/posts/a.png", call.path)
	assert.Empty(t, call.auth)
	assert.Equal(t, "image/png", call.ctype)
	assert.Equal(t, "png-bytes", call.body)
}

func TestUploadNon2xxIsError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusForbidden, `<Error><Code>SignatureDoesNotMatch</Code></Error>`)
	c, err := New(srv.URL, nil)
	require.NoError(t, err)

	err = c.Upload(context.Background(), srv.URL+"/bucket/k?X-Amz-Signature=abc", "image/png", nil)
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.False(t, strings.Contains(apiErr.Error(), "X-Amz-Signature"))
}
