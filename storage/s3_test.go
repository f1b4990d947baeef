package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"plain", "https://cdn.example.com", "uploads/a.png", "https://cdn.example.com/uploads/a.png"},
		{"trailing slash", "https://cdn.example.com/", "uploads/a.png", "https://cdn.example.com/uploads/a.png"},
		{"leading slash key", "https://cdn.example.com/team", "/uploads/a.png", "https://cdn.example.com/team/uploads/a.png"},
		{"empty key", "https://cdn.example.com", "", ""},
		{"no base", "", "uploads/a.png", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, publicURL(tt.base, tt.key))
		})
	}
}

func TestKeyFromURL(t *testing.T) {
	u := &s3Uploader{publicBaseURL: "https://bucket.obs.example.com/"}

	key, ok := u.KeyFromURL("https://bucket.obs.example.com/uploads/photo%201.jpg?v=2")
	require.True(t, ok)
	assert.Equal(t, "uploads/photo 1.jpg", key)

	_, ok = u.KeyFromURL("https://elsewhere.example.com/uploads/photo.jpg")
	assert.False(t, ok)

	_, ok = u.KeyFromURL("https://bucket.obs.example.com/")
	assert.False(t, ok)

	// round trip
	key, ok = u.KeyFromURL(u.GetPublicURL("uploads/x.png"))
	require.True(t, ok)
	assert.Equal(t, "uploads/x.png", key)
}

func TestNewS3UploaderRequiresConfig(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), S3UploaderConfig{BucketName: "team"})
	assert.Error(t, err)
}
