package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vnkhanh/challenge-server/config"
	"github.com/vnkhanh/challenge-server/middleware"
	"github.com/vnkhanh/challenge-server/models"
	"github.com/vnkhanh/challenge-server/utils"
)

// GET /invitations?role=received|sent|all&status=pending
func ListInvitations(c *gin.Context) {
	u := middleware.CurrentUser(c)

	query := config.DB.WithContext(c.Request.Context()).Model(&models.Invitation{})
	switch c.DefaultQuery("role", "received") {
	case "received":
		query = query.Where("invitee_id = ?", u.ID)
	case "sent":
		query = query.Where("inviter_id = ?", u.ID)
	case "all":
		query = query.Where("invitee_id = ? OR inviter_id = ?", u.ID, u.ID)
	default:
		utils.WriteError(c, utils.BadRequest("role must be one of received, sent, all"))
		return
	}

	if s := c.Query("status"); s != "" {
		status := models.InvitationStatus(s)
		if !status.Valid() {
			utils.WriteError(c, utils.BadRequest("status must be one of pending, accepted, declined"))
			return
		}
		query = query.Where("status = ?", status)
	}

	invitations := []models.Invitation{}
	if err := query.Order("created_at DESC").Find(&invitations).Error; err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot fetch invitations", err))
		return
	}
	c.JSON(http.StatusOK, invitations)
}

type inviteReq struct {
	ChallengeID string `json:"challengeId" binding:"required"`
	InviteeID   string `json:"inviteeId" binding:"required"`
}

// POST /invitations/invite
func InviteToChallenge(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req inviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("challengeId and inviteeId are required"))
		return
	}
	if req.InviteeID == u.ID {
		utils.WriteError(c, utils.BadRequest("You cannot invite yourself"))
		return
	}

	var invitation models.Invitation
	err := config.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var inviter, invitee models.User
		if err := findOne(tx, &inviter, u.ID, "Cannot find inviter."); err != nil {
			return err
		}
		if err := findOne(tx, &invitee, req.InviteeID, "Cannot find invitee."); err != nil {
			return err
		}
		var challenge models.Challenge
		if err := findOne(tx, &challenge, req.ChallengeID, "Cannot find challenge."); err != nil {
			return err
		}

		joined, err := isParticipant(tx, challenge.ID, invitee.ID)
		if err != nil {
			return utils.Unexpected("Cannot check participants", err)
		}
		if joined {
			return utils.Conflict("User already participates in this challenge.")
		}

		var existing int64
		if err := tx.Model(&models.Invitation{}).
			Where("challenge_id = ? AND inviter_id = ? AND invitee_id = ?", challenge.ID, inviter.ID, invitee.ID).
			Count(&existing).Error; err != nil {
			return utils.Unexpected("Cannot check invitations", err)
		}
		if existing > 0 {
			return utils.Conflict("Invitation already exists.")
		}

		invitation = models.Invitation{
			ChallengeID: challenge.ID,
			InviterID:   inviter.ID,
			InviteeID:   invitee.ID,
			Status:      models.InvitationPending,
		}
		// unique index (challenge, inviter, invitee) chặn 2 request đồng thời cùng qua bước count
		if err := tx.Create(&invitation).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.Conflict("Invitation already exists.")
			}
			return utils.Unexpected("Cannot create invitation", err)
		}

		content := fmt.Sprintf("%s invited you to join the challenge %s.", inviter.Name, challenge.Name)
		notification := models.NewInvitationNotification(invitee.ID, invitation.ID, content)
		if err := tx.Create(notification).Error; err != nil {
			return utils.Unexpected("Cannot create notification", err)
		}
		return nil
	})
	if err != nil {
		writeTxError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Invitation sent successfully.",
		"data":    invitation,
	})
}

type respondReq struct {
	InvitationID string `json:"invitationId" binding:"required"`
}

// POST /invitations/accept
func AcceptInvitation(c *gin.Context) {
	respondToInvitation(c, models.InvitationAccepted)
}

// POST /invitations/decline
func DeclineInvitation(c *gin.Context) {
	respondToInvitation(c, models.InvitationDeclined)
}

func respondToInvitation(c *gin.Context, next models.InvitationStatus) {
	u := middleware.CurrentUser(c)

	var req respondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("invitationId is required"))
		return
	}

	invitation, err := transitionInvitation(c.Request.Context(), req.InvitationID, u.ID, next)
	if err != nil {
		writeTxError(c, err)
		return
	}
	c.JSON(http.StatusOK, invitation)
}

// transitionInvitation chuyển lời mời pending sang next trong một transaction.
// Update có điều kiện status = pending đóng vai trò compare-and-swap: hai
// request accept cùng lúc thì chỉ một request cập nhật được.
func transitionInvitation(ctx context.Context, invitationID, userID string, next models.InvitationStatus) (*models.Invitation, error) {
	var invitation models.Invitation
	err := config.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOne(tx, &invitation, invitationID, "Cannot find invitation."); err != nil {
			return err
		}
		if invitation.InviteeID != userID || !invitation.Status.CanTransitionTo(next) {
			return utils.Forbidden("Invalid invitation or invitation status.")
		}

		res := tx.Model(&invitation).
			Where("invitee_id = ? AND status = ?", userID, models.InvitationPending).
			Update("status", next)
		if res.Error != nil {
			return utils.Unexpected("Cannot update invitation", res.Error)
		}
		if res.RowsAffected == 0 {
			return utils.Forbidden("Invalid invitation or invitation status.")
		}

		if next == models.InvitationAccepted {
			if err := addParticipant(tx, invitation.ChallengeID, userID); err != nil {
				return err
			}
		}

		return tx.First(&invitation, "id = ?", invitation.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

func addParticipant(tx *gorm.DB, challengeID, userID string) error {
	var challenge models.Challenge
	if err := findOne(tx, &challenge, challengeID, "Cannot find challenge."); err != nil {
		return err
	}
	p := models.ChallengeParticipant{ChallengeID: challenge.ID, UserID: userID}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&p).Error; err != nil {
		return utils.Unexpected("Cannot add participant", err)
	}
	return nil
}
