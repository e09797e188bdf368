package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vnkhanh/challenge-server/config"
	"github.com/vnkhanh/challenge-server/middleware"
	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/utils"
)

type createChallengeReq struct {
	Name        string     `json:"name" binding:"required"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

func validDates(start, end *time.Time) bool {
	return start == nil || end == nil || end.After(*start)
}

// POST /challenges: người tạo là owner và tự động tham gia
func CreateChallenge(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req createChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("name is required"))
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		utils.WriteError(c, utils.BadRequest("name is required"))
		return
	}
	if !validDates(req.StartDate, req.EndDate) {
		utils.WriteError(c, utils.BadRequest("endDate must be after startDate"))
		return
	}

	challenge := models.Challenge{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     u.ID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	err := config.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&challenge).Error; err != nil {
			return err
		}
		return tx.Create(&models.ChallengeParticipant{ChallengeID: challenge.ID, UserID: u.ID}).Error
	})
	if err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot create challenge", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Challenge created successfully.",
		"data":    challenge,
	})
}

// GET /challenges?page=1&limit=10: các challenge user đang tham gia
func ListChallenges(c *gin.Context) {
	u := middleware.CurrentUser(c)
	page, limit, offset := pagination(c)

	db := config.DB.WithContext(c.Request.Context())
	query := db.Model(&models.Challenge{}).
		Where("id IN (?)", db.Model(&models.ChallengeParticipant{}).
			Select("challenge_id").
			Where("user_id = ?", u.ID))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot fetch challenges", err))
		return
	}

	challenges := []models.Challenge{}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&challenges).Error; err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot fetch challenges", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  challenges,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

func participantIDs(db *gorm.DB, challengeID string) ([]string, error) {
	ids := []string{}
	err := db.Model(&models.ChallengeParticipant{}).
		Where("challenge_id = ?", challengeID).
		Order("joined_at ASC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// GET /challenges/:id
func GetChallengeDetail(c *gin.Context) {
	db := config.DB.WithContext(c.Request.Context())

	var challenge models.Challenge
	if err := findOne(db, &challenge, c.Param("id"), "Cannot find challenge."); err != nil {
		utils.WriteError(c, err)
		return
	}

	ids, err := participantIDs(db, challenge.ID)
	if err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot fetch participants", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":           challenge.ID,
			"name":         challenge.Name,
			"description":  challenge.Description,
			"ownerId":      challenge.OwnerID,
			"startDate":    challenge.StartDate,
			"endDate":      challenge.EndDate,
			"participants": ids,
			"createdAt":    challenge.CreatedAt,
			"updatedAt":    challenge.UpdatedAt,
		},
	})
}

// GET /challenges/:id/participants
func GetChallengeParticipants(c *gin.Context) {
	db := config.DB.WithContext(c.Request.Context())

	var challenge models.Challenge
	if err := findOne(db, &challenge, c.Param("id"), "Cannot find challenge."); err != nil {
		utils.WriteError(c, err)
		return
	}

	ids, err := participantIDs(db, challenge.ID)
	if err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot fetch participants", err))
		return
	}

	users := []models.User{}
	if len(ids) > 0 {
		if err := db.Where("id IN ?", ids).Order("name ASC").Find(&users).Error; err != nil {
			utils.WriteError(c, utils.Unexpected("Cannot fetch participants", err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"challengeId":  challenge.ID,
		"total":        len(users),
		"participants": users,
	})
}

type updateChallengeReq struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
}

// PUT /challenges/:id (owner-only)
func UpdateChallenge(c *gin.Context) {
	// challengeObj đã được middleware.CheckChallengeOwner nạp vào context
	challenge := c.MustGet(middleware.CtxChallenge).(models.Challenge)

	var req updateChallengeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("Invalid payload"))
		return
	}

	// update từng field nếu có
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			utils.WriteError(c, utils.BadRequest("name cannot be empty"))
			return
		}
		challenge.Name = name
	}
	if req.Description != nil {
		challenge.Description = req.Description
	}
	if req.StartDate != nil {
		challenge.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		challenge.EndDate = req.EndDate
	}
	if !validDates(challenge.StartDate, challenge.EndDate) {
		utils.WriteError(c, utils.BadRequest("endDate must be after startDate"))
		return
	}

	if err := config.DB.WithContext(c.Request.Context()).Save(&challenge).Error; err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot update challenge", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Challenge updated successfully.",
		"data":    challenge,
	})
}
