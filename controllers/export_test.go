package controllers

import "github.com/vnkhanh/challenge-server/utils"

// SetUploadAvatar thay hàm upload trong test, trả về hàm khôi phục.
func SetUploadAvatar(fn func(opt utils.StorageOptions, file interface{}, filename, fileID, folder, contentType string) (string, error)) func() {
	prev := uploadAvatar
	uploadAvatar = fn
	return func() { uploadAvatar = prev }
}
