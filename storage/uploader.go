package storage

import (
	"context"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores raw objects in a bucket.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

type ImageVariants struct {
	Public    string `json:"public"`
	Thumbnail string `json:"thumbnail"`
	Avatar    string `json:"avatar"`
}

// UploadedImage is an image accepted by the image provider together with its derived URLs.
type UploadedImage struct {
	ID       string        `json:"id"`
	URL      string        `json:"url"`
	Variants ImageVariants `json:"variants"`
	Filename string        `json:"filename"`
}

// ImageUploader relays images to the external image service.
type ImageUploader interface {
	UploadImage(ctx context.Context, data []byte, filename string) (*UploadedImage, error)
	DeleteImage(ctx context.Context, imageID string) error
}

// StreamVideo is the subset of Stream video metadata the API stores.
type StreamVideo struct {
	UID       string  `json:"uid"`
	Thumbnail string  `json:"thumbnail"`
	Duration  float64 `json:"duration"`
	Playback  struct {
		HLS  string `json:"hls"`
		Dash string `json:"dash"`
	} `json:"playback"`
	Input struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"input"`
	Status struct {
		State string `json:"state"`
	} `json:"status"`
}

// VideoStreamer speaks the resumable upload protocol of the video service.
type VideoStreamer interface {
	InitUpload(ctx context.Context, totalSize int64, filename string) (string, error)
	UploadChunk(ctx context.Context, uploadURL string, offset int64, data []byte) (string, error)
	GetVideo(ctx context.Context, videoID string) (*StreamVideo, error)
}
