package controllers

import (
	"errors"
	"fmt"
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

// test thay bằng bản giả để không gọi Supabase thật
var uploadAvatar = utils.UploadToSupabase

type profile struct {
	AuthID  string
	Name    string
	Email   string
	Picture string
}

// upsertUserByEmail trả về user sẵn có theo email, nếu chưa có thì tạo mới.
// created = true khi vừa tạo.
func upsertUserByEmail(db *gorm.DB, p profile) (user models.User, created bool, err error) {
	err = db.Where("email = ?", p.Email).First(&user).Error
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, false, err
	}

	user = models.User{
		AuthID:           p.AuthID,
		Name:             p.Name,
		Email:            p.Email,
		Picture:          p.Picture,
		TotalWorkoutTime: 0,
		StartingWeight:   0,
		CurrentWeight:    0,
	}
	if err := db.Create(&user).Error; err != nil {
		// login đồng thời cùng email: bản ghi kia thắng, đọc lại
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if e := db.Where("email = ?", p.Email).First(&user).Error; e == nil {
				return user, false, nil
			}
		}
		return user, false, err
	}
	return user, true, nil
}

type loginReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Picture string `json:"picture"`
}

// POST /users/login (chỉ cần token hợp lệ, user có thể chưa tồn tại)
// Bản ghi trả về luôn gắn với subject của token: email thuộc tài khoản khác thì 409.
func Login(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		utils.WriteError(c, utils.Unauthorized("Unauthorized"))
		return
	}

	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("name and a valid email are required"))
		return
	}
	if claims.Email != "" && !strings.EqualFold(claims.Email, req.Email) {
		utils.WriteError(c, utils.Forbidden("Email does not match the signed-in account."))
		return
	}

	db := config.DB.WithContext(c.Request.Context())

	var existing models.User
	err := db.Where("auth_id = ?", claims.Subject).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, existing)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.WriteError(c, utils.Unexpected("Error adding user", err))
		return
	}

	user, created, err := upsertUserByEmail(db, profile{
		AuthID:  claims.Subject,
		Name:    req.Name,
		Email:   req.Email,
		Picture: req.Picture,
	})
	if err != nil {
		utils.WriteError(c, utils.Unexpected("Error adding user", err))
		return
	}
	if user.AuthID != claims.Subject {
		utils.WriteError(c, utils.Conflict("Email is already linked to another account."))
		return
	}

	if created {
		c.JSON(http.StatusCreated, user)
		return
	}
	c.JSON(http.StatusOK, user)
}

type googleLoginReq struct {
	IDToken string `json:"idToken" binding:"required"`
}

// POST /users/google/login: xác minh Google ID token rồi cấp JWT của server
func GoogleLogin(c *gin.Context) {
	var req googleLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("idToken is required"))
		return
	}

	p, err := utils.VerifyGoogleIDToken(c.Request.Context(), req.IDToken, config.Cfg.GoogleClientID)
	if err != nil {
		utils.WriteError(c, utils.Unauthorized("Invalid Google token"))
		return
	}

	user, _, err := upsertUserByEmail(config.DB.WithContext(c.Request.Context()), profile{
		AuthID:  "google|" + p.Subject,
		Name:    p.Name,
		Email:   p.Email,
		Picture: p.Picture,
	})
	if err != nil {
		utils.WriteError(c, utils.Unexpected("Error adding user", err))
		return
	}

	token, err := utils.GenerateToken(user.AuthID, user.Email, user.Name, middleware.TokenOptions())
	if err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot issue token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GET /users/user
func GetCurrentUser(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var user models.User
	if err := findOne(config.DB.WithContext(c.Request.Context()), &user, u.ID, "Cannot find user."); err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateImageReq struct {
	ImageURL string `json:"imageUrl" binding:"required,url"`
}

// POST /users/user/image
func UpdateUserImage(c *gin.Context) {
	u := middleware.CurrentUser(c)

	var req updateImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("A valid imageUrl is required"))
		return
	}

	user, err := setPicture(c, u.ID, req.ImageURL)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// POST /users/user/image/upload (multipart "file")
func UploadUserImage(c *gin.Context) {
	u := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.WriteError(c, utils.BadRequest("file is required"))
		return
	}
	if fileHeader.Size > 5<<20 {
		utils.WriteError(c, utils.BadRequest("file exceeds 5MB"))
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		utils.WriteError(c, utils.BadRequest("file must be an image"))
		return
	}

	opt := utils.StorageOptions{
		URL:    config.Cfg.SupabaseURL,
		Key:    config.Cfg.SupabaseKey,
		Bucket: config.Cfg.SupabaseBucket,
	}
	fileID := fmt.Sprintf("%s_%d", u.ID, time.Now().UnixNano())
	publicURL, err := uploadAvatar(opt, fileHeader, fileHeader.Filename, fileID, "users", "")
	if err != nil {
		utils.WriteError(c, utils.Unexpected("Error uploading user image", err))
		return
	}

	user, err := setPicture(c, u.ID, publicURL)
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func setPicture(c *gin.Context, userID, url string) (models.User, error) {
	db := config.DB.WithContext(c.Request.Context())

	var user models.User
	if err := findOne(db, &user, userID, "Cannot find user."); err != nil {
		return user, err
	}
	user.Picture = url
	if err := db.Save(&user).Error; err != nil {
		return user, utils.Unexpected("Error updating user image", err)
	}
	return user, nil
}

type searchUsersReq struct {
	NameInput string `json:"nameInput"`
}

// POST /users/search: tìm theo tên, không phân biệt hoa thường, tối đa 10
func SearchUsers(c *gin.Context) {
	var req searchUsersReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.WriteError(c, utils.BadRequest("Invalid request body"))
		return
	}

	name := strings.TrimSpace(req.NameInput)
	if name == "" {
		utils.WriteError(c, utils.BadRequest("Name input required."))
		return
	}

	users := []models.User{}
	if err := config.DB.WithContext(c.Request.Context()).
		Where("LOWER(name) LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(name))+"%").
		Order("name ASC").
		Limit(10).
		Find(&users).Error; err != nil {
		utils.WriteError(c, utils.Unexpected("Cannot search users", err))
		return
	}
	c.JSON(http.StatusOK, users)
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
