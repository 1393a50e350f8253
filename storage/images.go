package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type cloudflareImages struct {
	client      *fasthttp.Client
	endpoint    string
	token       string
	deliveryURL string
	archive     FileUploader
}

// NewCloudflareImages returns an ImageUploader backed by Cloudflare Images.
// When archive is non-nil every accepted original is also mirrored there.
func NewCloudflareImages(cfg CloudflareConfig, archive FileUploader) ImageUploader {
	return &cloudflareImages{
		client:      newFastHTTPClient(),
		endpoint:    fmt.Sprintf("%s/accounts/%s/images/v1", cfg.APIBaseURL, cfg.AccountID),
		token:       cfg.APIToken,
		deliveryURL: cfg.ImagesDeliveryURL,
		archive:     archive,
	}
}

type imageResult struct {
	ID       string   `json:"id"`
	Filename string   `json:"filename"`
	Variants []string `json:"variants"`
}

func (c *cloudflareImages) UploadImage(ctx context.Context, data []byte, filename string) (*UploadedImage, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.Set("Authorization", "Bearer "+c.token)
	contentType, err := writeFilePart(req.BodyWriter(), "file", filename, data)
	if err != nil {
		return nil, err
	}
	req.Header.SetContentType(contentType)

	if err := doFast(ctx, c.client, req, resp); err != nil {
		return nil, fmt.Errorf("failed to upload image %q: %w", filename, err)
	}

	result, err := decodeEnvelope[imageResult](resp.StatusCode(), resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to upload image %q: %w", filename, err)
	}

	uploaded := c.describe(result.ID, filename)
	c.mirror(ctx, uploaded, data)
	return uploaded, nil
}

// writeFilePart encodes data as the only file of a multipart form and returns the form's content type.
func writeFilePart(w io.Writer, field, filename string, data []byte) (string, error) {
	mw := multipart.NewWriter(w)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart file part: %w", err)
	}
	if _, err = part.Write(data); err != nil {
		return "", fmt.Errorf("failed to write multipart body: %w", err)
	}
	if err = mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return mw.FormDataContentType(), nil
}

func (c *cloudflareImages) describe(id, filename string) *UploadedImage {
	url := c.deliveryURL + "/" + id
	return &UploadedImage{
		ID:  id,
		URL: url,
		Variants: ImageVariants{
			Public:    url + "/public",
			Thumbnail: url + "/thumbnail",
			Avatar:    url + "/avatar",
		},
		Filename: filename,
	}
}

func (c *cloudflareImages) mirror(ctx context.Context, img *UploadedImage, data []byte) {
	if c.archive == nil {
		return
	}
	key := archiveKey(img.ID)
	if _, err := c.archive.Upload(ctx, key, http.DetectContentType(data), bytes.NewReader(data)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("failed to archive original image")
	}
}

func (c *cloudflareImages) DeleteImage(ctx context.Context, imageID string) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint + "/" + imageID)
	req.Header.SetMethod(fasthttp.MethodDelete)
	req.Header.Set("Authorization", "Bearer "+c.token)

	if err := doFast(ctx, c.client, req, resp); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", imageID, err)
	}
	if _, err := decodeEnvelope[struct{}](resp.StatusCode(), resp.Body()); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", imageID, err)
	}

	if c.archive != nil {
		if err := c.archive.Delete(ctx, archiveKey(imageID)); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("image_id", imageID).Msg("failed to remove archived original")
		}
	}
	return nil
}

func archiveKey(imageID string) string {
	return "images/" + imageID
}
