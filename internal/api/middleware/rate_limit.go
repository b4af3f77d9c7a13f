package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/princeprakhar/partnerhub/internal/utils"
	"github.com/princeprakhar/partnerhub/pkg/logger"
)

const msgThrottled = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."

// RateLimitMiddleware allows rps requests per second per client and path.
func RateLimitMiddleware(rps int) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: time.Second,
		Limit:  int64(rps),
	}

	store := memory.NewStore()
	instance := limiter.New(store, rate, limiter.WithTrustForwardHeader(true))

	return mgin.NewMiddleware(instance,
		mgin.WithKeyGetter(func(c *gin.Context) string {
			return fmt.Sprintf("%s:%s", c.ClientIP(), c.Request.URL.Path)
		}),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			utils.SendDetail(c, http.StatusTooManyRequests, msgThrottled)
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			logger.Error("rate limiter failed: ", err)
			utils.SendError(c, http.StatusInternalServerError, "요청 처리 중 오류가 발생했습니다.")
		}),
	)
}
