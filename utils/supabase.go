package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"

	storage "github.com/supabase-community/storage-go"
)

type StorageOptions struct {
	URL    string
	Key    string
	Bucket string
}

// ObjectPath ghép folder/fileID + phần mở rộng của filename
func ObjectPath(folder, fileID, filename string) string {
	ext := filepath.Ext(filename)
	if folder == "" {
		return fileID + ext
	}
	return fmt.Sprintf("%s/%s%s", folder, fileID, ext)
}

// UploadToSupabase upload file (multipart hoặc []byte) lên bucket và trả về public URL
func UploadToSupabase(opt StorageOptions, file interface{}, filename, fileID, folder, contentType string) (string, error) {
	if opt.URL == "" || opt.Key == "" || opt.Bucket == "" {
		return "", errors.New("supabase storage is not configured")
	}

	var reader io.Reader
	switch f := file.(type) {
	case *multipart.FileHeader:
		src, err := f.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()
		reader = src
		if filename == "" {
			filename = f.Filename
		}
		if contentType == "" {
			contentType = f.Header.Get("Content-Type")
		}
	case []byte:
		reader = bytes.NewReader(f)
	default:
		return "", fmt.Errorf("unsupported upload type %T", file)
	}

	objectPath := ObjectPath(folder, fileID, filename)
	storageClient := storage.NewClient(opt.URL+"/storage/v1", opt.Key, nil)

	upsert := true
	options := storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}
	if _, err := storageClient.UploadFile(opt.Bucket, objectPath, reader, options); err != nil {
		return "", err
	}

	publicURL := storageClient.GetPublicUrl(opt.Bucket, objectPath)
	return publicURL.SignedURL, nil
}
