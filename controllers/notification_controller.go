package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/challenge-server/config"
	"github.com/vnkhanh/challenge-server/middleware"
	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/utils"
)

// GET /notifications?unread=true
func ListNotifications(c *gin.Context) {
	u := middleware.CurrentUser(c)

	query := config.DB.WithContext(c.Request.Context()).Where("user_id = ?", u.ID)
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	notifications := []models.Notification{}
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot fetch notifications", err))
		return
	}
	c.JSON(http.StatusOK, notifications)
}

type readNotificationReq struct {
	NotificationID string `json:"notificationId" binding:"required"`
}

// POST /notifications/read
// Đọc lại thông báo đã đọc là no-op, vẫn trả về bản ghi hiện tại.
func ReadNotification(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req readNotificationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("notificationId is required"))
		return
	}

	var notification models.Notification
	err := config.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := findOne(tx, &notification, req.NotificationID, "Cannot find notification."); err != nil {
			return err
		}
		if notification.UserID != u.ID {
			return utils.Forbidden("Not authorized to read notification.")
		}
		if notification.IsRead {
			return nil
		}

		if err := tx.Model(&notification).
			Where("is_read = ?", false).
			Update("is_read", true).Error; err != nil {
			return utils.Unexpected("Cannot update notification", err)
		}
		return tx.First(&notification, "id = ?", notification.ID).Error
	})
	if err != nil {
		writeTxError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}
