package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/utils"
)

// Mỗi key có một limiter riêng + lastSeen để dọn dẹp
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter quản lý map<key, limiter>, key là user id hoặc IP
type KeyedRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor

	reqPerMin int
	burst     int
	ttl       time.Duration
	now       func() time.Time
}

// reqPerMin: ví dụ 20, burst: 5, ttl: 5 phút (key không hoạt động sẽ bị dọn)
func NewKeyedRateLimiter(reqPerMin, burst int, ttl time.Duration) *KeyedRateLimiter {
	if reqPerMin <= 0 {
		reqPerMin = 1
	}
	if burst <= 0 {
		burst = 1
	}
	return &KeyedRateLimiter{
		visitors:  make(map[string]*visitor),
		reqPerMin: reqPerMin,
		burst:     burst,
		ttl:       ttl,
		now:       time.Now,
	}
}

func (rl *KeyedRateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.visitors[key]
	if !ok {
		// chuyển req/phút -> rate.Limit (req/giây)
		rps := float64(rl.reqPerMin) / 60.0
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rps), rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Cleanup xoá các key đã quá ttl không hoạt động
func (rl *KeyedRateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.visitors, key)
		}
	}
}

func (rl *KeyedRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// RunCleanup chạy nền cho tới khi stop bị đóng
func (rl *KeyedRateLimiter) RunCleanup(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.Cleanup()
		case <-stop:
			return
		}
	}
}

// userOrIP: ưu tiên user đã xác thực, nếu chưa có thì dùng IP
func userOrIP(c *gin.Context) string {
	if v, ok := c.Get(CtxUser); ok {
		if u, ok := v.(models.User); ok {
			return "user:" + u.ID
		}
	}
	return "ip:" + c.ClientIP()
}

func RateLimit(rl *KeyedRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(userOrIP(c)) {
			utils.WriteError(c, utils.RateLimited("Too many requests, please try again later"))
			return
		}
		c.Next()
	}
}
