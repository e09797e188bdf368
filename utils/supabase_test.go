package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	assert.Equal(t, "abc.png", ObjectPath("", "abc", "me.png"))
	assert.Equal(t, "avatars/abc.jpg", ObjectPath("avatars", "abc", "photo.jpg"))
	assert.Equal(t, "avatars/abc", ObjectPath("avatars", "abc", "noext"))
}

func TestUploadToSupabaseRequiresConfig(t *testing.T) {
	_, err := UploadToSupabase(StorageOptions{}, []byte("x"), "a.png", "id", "", "image/png")
	assert.Error(t, err)

	_, err = UploadToSupabase(StorageOptions{URL: "http://s", Key: "k", Bucket: "b"}, 42, "a.png", "id", "", "")
	assert.Error(t, err, "unsupported type")
}
