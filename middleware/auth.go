package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/challenge-server/config"
	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/utils"
)

const (
	CtxClaims = "claims" // *utils.JWTClaims đã xác minh
	CtxUser   = "user"   // models.User ứng với token
)

func TokenOptions() utils.TokenOptions {
	return utils.TokenOptions{
		Secret:   config.Cfg.JWTSecret,
		Issuer:   config.Cfg.JWTIssuer,
		Audience: config.Cfg.JWTAudience,
		TTL:      config.Cfg.JWTTTL,
	}
}

// VerifyAccessToken kiểm tra Authorization: Bearer <token> và đưa claims vào context.
// Chưa tra user, dùng cho route login khi user có thể chưa tồn tại.
func VerifyAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			utils.WriteError(c, utils.Unauthorized("Missing or invalid Authorization header"))
			return
		}
		rawToken := strings.TrimSpace(authHeader[7:])

		claims, err := utils.VerifyToken(rawToken, TokenOptions())
		if err != nil {
			utils.WriteError(c, utils.Unauthorized("Invalid token"))
			return
		}

		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// AttachUser tra user theo auth_id (subject của token) và inject vào context.
func AttachUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			utils.WriteError(c, utils.Unauthorized("Unauthorized"))
			return
		}

		var user models.User
		err := config.DB.WithContext(c.Request.Context()).
			Where("auth_id = ?", claims.Subject).
			First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteError(c, utils.Unauthorized("User not found, please log in first"))
			return
		}
		if err != nil {
			utils.WriteError(c, utils.Unexpected("Cannot load user", err))
			return
		}

		c.Set(CtxUser, user)
		c.Next()
	}
}

// Authenticated = VerifyAccessToken + AttachUser
func Authenticated() []gin.HandlerFunc {
	return []gin.HandlerFunc{VerifyAccessToken(), AttachUser()}
}

func ClaimsFrom(c *gin.Context) (*utils.JWTClaims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.JWTClaims)
	return claims, ok
}

func CurrentUser(c *gin.Context) models.User {
	return c.MustGet(CtxUser).(models.User)
}
