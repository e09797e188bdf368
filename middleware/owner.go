package middleware

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/challenge-server/config"
	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/utils"
)

const CtxChallenge = "challengeObj"

// CheckChallengeOwner: nạp challenge vào context & xác thực sở hữu
func CheckChallengeOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := c.Get(CtxUser)
		if !ok {
			utils.WriteError(c, utils.Unauthorized("Unauthorized"))
			return
		}
		user := u.(models.User)

		id := c.Param("id")
		if id == "" {
			utils.WriteError(c, utils.BadRequest("Invalid challenge id"))
			return
		}

		var challenge models.Challenge
		if err := config.DB.WithContext(c.Request.Context()).First(&challenge, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteError(c, utils.NotFound("Challenge not found"))
				return
			}
			utils.WriteError(c, utils.Unexpected("Cannot load challenge", err))
			return
		}

		if challenge.OwnerID != user.ID {
			log.Printf("[CheckChallengeOwner] user=%s challenge=%s owner=%s", user.ID, challenge.ID, challenge.OwnerID)
			utils.WriteError(c, utils.Forbidden("Only the challenge owner can do this"))
			return
		}

		c.Set(CtxChallenge, challenge)
		c.Next()
	}
}
