package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/utils"
)

// findOne nạp bản ghi theo id; không có thì trả NotFound với notFoundMsg.
func findOne(db *gorm.DB, dest interface{}, id, notFoundMsg string) error {
	err := db.First(dest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NotFound(notFoundMsg)
	}
	if err != nil {
		return utils.Unexpected("Cannot load record", err)
	}
	return nil
}

func isParticipant(db *gorm.DB, challengeID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.ChallengeParticipant{}).
		Where("challenge_id = ? AND user_id = ?", challengeID, userID).
		Count(&count).Error
	return count > 0, err
}

// writeTxError đổi lỗi validate của model sang 422, còn lại để WriteError xử lý
func writeTxError(c *gin.Context, err error) {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		utils.WriteError(c, utils.Validation(verr.Error()))
		return
	}
	utils.WriteError(c, err)
}

// pagination đọc page/limit từ query, limit tối đa 100
func pagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}
