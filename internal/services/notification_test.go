package services

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notificationList = `[
	{"id":1,"sender_username":"lee","message":"lee님이 제휴를 요청했습니다.","post":3,"request_message":"같이 해요","is_read":false,"created_at":"2025-05-01T10:00:00Z"},
	{"id":2,"sender_username":"park","message":"park님이 제휴를 요청했습니다.","post":3,"request_message":null,"is_read":false,"created_at":"2025-05-02T10:00:00Z"}
]`

func TestNotificationFeedMarkRead(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodGet, "/api/v1/notifications/", http.StatusOK, notificationList)
	var unread atomic.Int32
	unread.Store(2)
	api.handle(http.MethodGet, "/api/v1/notifications/unread-count/", func(*http.Request, []byte) reply {
		if unread.Load() == 2 {
			return reply{http.StatusOK, `{"success":true,"message":"ok","data":{"unread_count":2}}`}
		}
		return reply{http.StatusOK, `{"success":true,"message":"ok","data":{"unread_count":1}}`}
	})
	api.handle(http.MethodPatch, "/api/v1/notifications/2/read/", func(*http.Request, []byte) reply {
		unread.Store(1)
		return reply{http.StatusOK, okEmpty}
	})

	feed := NewNotificationFeed(NewNotificationService(api.client(t, true)))
	ctx := context.Background()
	require.NoError(t, feed.Load(ctx))
	require.Len(t, feed.Items(), 2)
	assert.Equal(t, 2, feed.Unread())
	assert.Nil(t, feed.Items()[1].RequestMessage)

	require.NoError(t, feed.MarkRead(ctx, 2))
	items := feed.Items()
	assert.False(t, items[0].IsRead)
	assert.True(t, items[1].IsRead)
	assert.Equal(t, 1, feed.Unread())
	assert.Equal(t, 2, api.count(http.MethodGet, "/api/v1/notifications/unread-count/"))
}

func TestNotificationFeedMarkReadFailureKeepsState(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodGet, "/api/v1/notifications/", http.StatusOK, notificationList)
	api.on(http.MethodGet, "/api/v1/notifications/unread-count/", http.StatusOK,
		`{"success":true,"message":"ok","data":{"unread_count":2}}`)
	api.on(http.MethodPatch, "/api/v1/notifications/1/read/", http.StatusInternalServerError, `{"message":"boom"}`)

	feed := NewNotificationFeed(NewNotificationService(api.client(t, true)))
	require.NoError(t, feed.Load(context.Background()))

	require.Error(t, feed.MarkRead(context.Background(), 1))
	assert.False(t, feed.Items()[0].IsRead)
	assert.Equal(t, 1, api.count(http.MethodGet, "/api/v1/notifications/unread-count/"))
}

func TestNotificationListIsDefensive(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodGet, "/api/v1/notifications/", http.StatusOK, `{"detail":"unexpected"}`)

	items, err := NewNotificationService(api.client(t, true)).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestSendPartnerRequest(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/notifications/partner-request/", http.StatusCreated,
		`{"post":3,"message":"같이 해요"}`)
	svc := NewNotificationService(api.client(t, true))

	_, err := svc.SendPartnerRequest(context.Background(), 3, "  ")
	assert.Equal(t, "제휴 요청 메시지를 입력해주세요.", DisplayMessage(err, MsgPartnerRequestFailed))
	assert.Zero(t, api.count(http.MethodPost, "/api/v1/notifications/partner-request/"))

	req, err := svc.SendPartnerRequest(context.Background(), 3, "같이 해요")
	require.NoError(t, err)
	assert.Equal(t, uint(3), req.Post)
	assert.JSONEq(t, `{"post":3,"message":"같이 해요"}`,
		api.lastBody(http.MethodPost, "/api/v1/notifications/partner-request/"))
}

func TestSendPartnerRequestDuplicate(t *testing.T) {
	api := newFakeAPI(t)
	api.on(http.MethodPost, "/api/v1/notifications/partner-request/", http.StatusBadRequest,
		`{"non_field_errors":["이미 제휴 요청을 보냈습니다."]}`)

	_, err := NewNotificationService(api.client(t, true)).SendPartnerRequest(context.Background(), 3, "hi")
	require.Error(t, err)
	assert.Equal(t, MsgPartnerRequestFailed, DisplayMessage(err, MsgPartnerRequestFailed))
}
