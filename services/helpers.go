package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/metrics"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/storage"
)

// NotificationPublisher delivers freshly stored notifications to connected clients.
type NotificationPublisher interface {
	PublishNotification(n models.Notification)
}

type noopPublisher struct{}

func (noopPublisher) PublishNotification(models.Notification) {}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func normalizePage(page, limit, fallback int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = fallback
	}
	if limit > constants.MaxPageSize {
		limit = constants.MaxPageSize
	}
	return page, limit
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func oneOf(value string, allowed ...string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

// uploadBase64 decodes and relays one image to the image service.
func uploadBase64(ctx context.Context, uploader storage.ImageUploader, data, filename, kind string) (*storage.UploadedImage, error) {
	raw, err := storage.DecodeBase64Image(data)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidBase64) {
			return nil, errInvalidBase64
		}
		return nil, err
	}

	img, err := uploader.UploadImage(ctx, raw, filename)
	if err != nil {
		metrics.Uploads.WithLabelValues(kind, "error").Inc()
		return nil, fmt.Errorf("failed to upload %s image: %w", kind, err)
	}
	metrics.Uploads.WithLabelValues(kind, "success").Inc()
	return img, nil
}
