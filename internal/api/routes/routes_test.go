package routes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/quotedprintable"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/princeprakhar/partnerhub/internal/apiclient"
	"github.com/princeprakhar/partnerhub/internal/config"
	"github.com/princeprakhar/partnerhub/internal/credentials"
	"github.com/princeprakhar/partnerhub/internal/database"
	"github.com/princeprakhar/partnerhub/internal/guards"
	"github.com/princeprakhar/partnerhub/internal/mailer"
	"github.com/princeprakhar/partnerhub/internal/services"
	"github.com/princeprakhar/partnerhub/internal/storage"
	"github.com/princeprakhar/partnerhub/internal/types"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.SetOutput(io.Discard)
}

type sandbox struct {
	srv  *httptest.Server
	db   *database.DB
	mail *mailer.EmailService
}

func newSandbox(t *testing.T, rps int) *sandbox {
	t.Helper()
	cfg := &config.SandboxConfig{
		JWTSecret:    "test-secret",
		S3Bucket:     "uploads",
		S3Region:     "ap-northeast-2",
		RateLimitRPS: rps,
		FromEmail:    "noreply@partnerhub.local",
		BaseURL:      "http://localhost:3000",
	}
	store, err := storage.NewS3Service(cfg.S3Region, cfg.S3Bucket, "key", "secret", "http://placeholder")
	require.NoError(t, err)

	db, err := database.Init("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sb := &sandbox{db: db, mail: mailer.NewEmailService(cfg)}
	router := gin.New()
	SetupRoutes(router, Dependencies{Config: cfg, DB: sb.db, Storage: store, Mail: sb.mail})

	sb.srv = httptest.NewServer(router)
	t.Cleanup(sb.srv.Close)
	require.NoError(t, store.SetPublicURL(sb.srv.URL))
	return sb
}

func (sb *sandbox) client(t *testing.T) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(sb.srv.URL+"/api/v1", credentials.NewMemoryStore())
	require.NoError(t, err)
	return c
}

type navRecorder struct{ routes []string }

func (n *navRecorder) Navigate(route string) { n.routes = append(n.routes, route) }

func signupAndLogin(t *testing.T, c *apiclient.Client, username, email, phone string) {
	t.Helper()
	ctx := context.Background()
	auth := services.NewAuthService(c)
	_, err := auth.Signup(ctx, services.SignupRequest{
		Username:    username,
		Name:        username + " 사장",
		Email:       email,
		PhoneNumber: phone,
		Password:    "secret-pw",
		ImageURL:    "https://example.com/profile.png",
	})
	require.NoError(t, err)
	_, err = auth.Login(ctx, services.LoginRequest{Username: username, Password: "secret-pw"})
	require.NoError(t, err)
}

func TestPartnershipFlow(t *testing.T) {
	sb := newSandbox(t, 100)
	ctx := context.Background()

	owner := sb.client(t)
	signupAndLogin(t, owner, "kim", "kim@example.com", "01011112222")

	state := guards.NewAuthCheck(owner).Run(ctx)
	require.NotNil(t, state.User)
	assert.Equal(t, "kim", state.User.Username)

	// no store yet: page loads redirect to store creation
	nav := &navRecorder{}
	_, err := services.NewLoader(owner).LoadMain(ctx, nav)
	assert.True(t, errors.Is(err, services.ErrNoStore))
	assert.Equal(t, []string{guards.RouteStoreCreate}, nav.routes)

	_, err = services.NewStoreService(owner).Create(ctx, services.StoreForm{
		Name: "달콤상점", Address: "서울시 마포구", PhoneNumber: "0212345678", AvailableTime: "10-18", Categories: []uint{1},
	})
	require.NoError(t, err)

	post, err := services.NewPostService(owner).Create(ctx, services.PostForm{
		Title:                 "디저트 제휴 구합니다",
		StoreName:             "달콤상점",
		Description:           "같이 이벤트 하실 분",
		Address:               "서울시 마포구",
		PhoneNumber:           "0212345678",
		AvailableTime:         "10-18",
		PartnershipCategories: []uint{1, 3},
	}, []services.UploadFile{
		{Name: "front.png", Data: []byte("png-front")},
		{Name: "menu.jpg", Data: []byte("jpg-menu")},
	})
	require.NoError(t, err)
	require.Len(t, post.Images, 2)
	assert.True(t, post.Images[0].IsThumbnail)
	assert.False(t, post.Images[1].IsThumbnail)
	assert.Equal(t, "kim", post.Author)

	resp, err := http.Get(post.Thumbnail())
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "png-front", string(body))
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	// another user browses and sends a partner request
	partner := sb.client(t)
	signupAndLogin(t, partner, "lee", "lee@example.com", "01033334444")
	_, err = services.NewStoreService(partner).Create(ctx, services.StoreForm{
		Name: "헬스짐", Address: "서울시 강남구", PhoneNumber: "025556666", AvailableTime: "상시",
	})
	require.NoError(t, err)

	page, err := services.NewLoader(partner).LoadMain(ctx, &navRecorder{})
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Len(t, services.FilterPosts(page.Posts, services.NewCategorySet("카페")), 1)
	assert.Empty(t, services.FilterPosts(page.Posts, services.NewCategorySet("뷰티")))
	assert.Zero(t, page.UnreadCount)

	notes := services.NewNotificationService(partner)
	_, err = notes.SendPartnerRequest(ctx, post.ID, "함께 이벤트 해요")
	require.NoError(t, err)
	_, err = notes.SendPartnerRequest(ctx, post.ID, "한번 더")
	require.Error(t, err)
	assert.Equal(t, "이미 이 게시글에 제휴 요청을 보냈습니다.", services.DisplayMessage(err, services.MsgPartnerRequestFailed))

	// the owner sees and reads the notification
	feed := services.NewNotificationFeed(services.NewNotificationService(owner))
	require.NoError(t, feed.Load(ctx))
	items := feed.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "lee 사장", items[0].SenderUsername)
	assert.Equal(t, post.ID, items[0].Post)
	assert.Equal(t, 1, feed.Unread())

	require.NoError(t, feed.MarkRead(ctx, items[0].ID))
	assert.True(t, feed.Items()[0].IsRead)
	assert.Zero(t, feed.Unread())

	mine, err := services.NewLoader(owner).LoadMyPage(ctx, &navRecorder{})
	require.NoError(t, err)
	require.Len(t, mine.Posts, 1)
	assert.Equal(t, []string{"카페"}, mine.CategoryNames(mine.Store.Categories))
}

func TestUploadWithoutSignedTargetIsRejected(t *testing.T) {
	sb := newSandbox(t, 100)
	c := sb.client(t)
	signupAndLogin(t, c, "kim", "kim@example.com", "010")

	err := c.Upload(context.Background(), sb.srv.URL+"/storage/uploads/posts/forged.png?X-Amz-Signature=x", "image/png", []byte("x"))
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, apiclient.StatusCode(err))
}

func TestSignupDuplicateShowsFirstFieldError(t *testing.T) {
	sb := newSandbox(t, 100)
	signupAndLogin(t, sb.client(t), "kim", "kim@example.com", "010")

	_, err := services.NewAuthService(sb.client(t)).Signup(context.Background(), services.SignupRequest{
		Username: "kim", Name: "다른 김", Email: "other@example.com", PhoneNumber: "019",
		Password: "pw", ImageURL: "https://example.com/p.png",
	})
	require.Error(t, err)
	assert.Equal(t, "이미 사용 중인 사용자명입니다.", services.DisplayMessage(err, services.MsgSignupFailed))
}

func TestLoginWithWrongPassword(t *testing.T) {
	sb := newSandbox(t, 100)
	signupAndLogin(t, sb.client(t), "kim", "kim@example.com", "010")

	c := sb.client(t)
	_, err := services.NewAuthService(c).Login(context.Background(), services.LoginRequest{Username: "kim", Password: "nope"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apiclient.ErrUnauthorized))
	assert.Equal(t, "아이디 또는 비밀번호가 올바르지 않습니다.", services.DisplayMessage(err, services.MsgLoginFailed))
}

var resetLink = regexp.MustCompile(`token=([0-9a-f]+)&(?:amp;)?uid=([A-Za-z0-9_-]+)`)

func TestPasswordResetFlow(t *testing.T) {
	sb := newSandbox(t, 100)
	ctx := context.Background()
	signupAndLogin(t, sb.client(t), "kim", "kim@example.com", "01011112222")

	auth := services.NewAuthService(sb.client(t))
	masked, err := auth.FindID(ctx, services.FindIDRequest{Email: "kim@example.com", PhoneNumber: "01011112222"})
	require.NoError(t, err)
	assert.Equal(t, "ki*", masked)

	_, err = auth.RequestPasswordReset(ctx, services.PasswordResetRequest{Email: "kim@example.com"})
	require.NoError(t, err)

	out := sb.mail.Outbox()
	require.Len(t, out, 1)
	_, mailBody, found := bytes.Cut(out[0].Raw, []byte("\r\n\r\n"))
	require.True(t, found)
	decoded, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(mailBody)))
	require.NoError(t, err)
	m := resetLink.FindSubmatch(decoded)
	require.NotNil(t, m)
	token, uid := string(m[1]), string(m[2])

	_, err = auth.ValidateResetLink(ctx, uid, "deadbeef")
	require.Error(t, err)
	assert.Equal(t, "토큰이 유효하지 않거나 만료되었습니다.", services.DisplayMessage(err, services.MsgResetLinkInvalid))

	msg, err := auth.ValidateResetLink(ctx, uid, token)
	require.NoError(t, err)
	assert.Equal(t, "유효한 링크입니다.", msg)

	_, err = auth.ConfirmPasswordReset(ctx, services.ResetConfirmRequest{
		UID: uid, Token: token, NewPassword: "brand-new", ConfirmPassword: "brand-new",
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, services.LoginRequest{Username: "kim", Password: "brand-new"})
	require.NoError(t, err)

	// tokens are single use
	_, err = auth.ValidateResetLink(ctx, uid, token)
	assert.Error(t, err)
}

func TestInvalidTokenClearsCredentials(t *testing.T) {
	sb := newSandbox(t, 100)
	c := sb.client(t)
	require.NoError(t, c.Credentials().Save(credentialsPair("forged", "forged-refresh")))

	state := guards.NewAuthCheck(c).Run(context.Background())
	assert.True(t, state.Checked)
	assert.Nil(t, state.User)
	pair, err := c.Credentials().Load()
	require.NoError(t, err)
	assert.Empty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestRateLimitAnswersTooManyRequests(t *testing.T) {
	sb := newSandbox(t, 1)
	c := sb.client(t)

	_, err := c.Get(context.Background(), "/posts/categories/", nil)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "/posts/categories/", nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusTooManyRequests, apiclient.StatusCode(err))
	assert.True(t, errors.Is(err, apiclient.ErrRejected))
	assert.Equal(t, "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.", services.DisplayMessage(err, services.MsgMainFailed))
}

func credentialsPair(access, refresh string) types.TokenPair {
	return types.TokenPair{AccessToken: access, RefreshToken: refresh}
}
