package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/valyala/fasthttp"
)

const (
	tusVersion = "1.0.0"

	// MinSingleChunkSize is the smallest payload the Stream API accepts in one PATCH.
	MinSingleChunkSize = 5 * 1024 * 1024
	// ChunkBlockSize is the granularity Stream requires for non-final chunks.
	ChunkBlockSize = 256 * 1024
)

type cloudflareStream struct {
	client   *fasthttp.Client
	endpoint string
	token    string
}

// NewCloudflareStream returns a VideoStreamer for Cloudflare Stream's tus endpoint.
func NewCloudflareStream(cfg CloudflareConfig) VideoStreamer {
	return &cloudflareStream{
		client:   newFastHTTPClient(),
		endpoint: fmt.Sprintf("%s/accounts/%s/stream", cfg.APIBaseURL, cfg.AccountID),
		token:    cfg.StreamToken,
	}
}

// PadSingleChunk grows a single-chunk payload to satisfy the minimum chunk size.
func PadSingleChunk(data []byte) []byte {
	n := len(data)
	padding := max(MinSingleChunkSize-n, ChunkBlockSize-n%ChunkBlockSize)
	padded := make([]byte, n+padding)
	copy(padded, data)
	return padded
}

func (c *cloudflareStream) InitUpload(ctx context.Context, totalSize int64, filename string) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Tus-Resumable", tusVersion)
	req.Header.Set("Upload-Length", strconv.FormatInt(totalSize, 10))
	req.Header.Set("Upload-Metadata", "filename "+base64.StdEncoding.EncodeToString([]byte(filename)))

	if err := doFast(ctx, c.client, req, resp); err != nil {
		return "", fmt.Errorf("failed to initialize upload: %w", err)
	}
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return "", fmt.Errorf("failed to initialize upload: status %d: %s", status, resp.Body())
	}

	location := string(resp.Header.Peek(fasthttp.HeaderLocation))
	if location == "" {
		return "", fmt.Errorf("no upload URL received from stream API")
	}
	return location, nil
}

// UploadChunk PATCHes data at offset and returns the media id when the service reports one.
func (c *cloudflareStream) UploadChunk(ctx context.Context, uploadURL string, offset int64, data []byte) (string, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(uploadURL)
	req.Header.SetMethod(fasthttp.MethodPatch)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Tus-Resumable", tusVersion)
	req.Header.Set("Upload-Offset", strconv.FormatInt(offset, 10))
	req.Header.SetContentType("application/offset+octet-stream")
	req.SetBody(data)

	if err := doFast(ctx, c.client, req, resp); err != nil {
		return "", fmt.Errorf("failed to upload chunk at offset %d: %w", offset, err)
	}
	if status := resp.StatusCode(); status < 200 || status >= 300 {
		return "", fmt.Errorf("failed to upload chunk at offset %d: status %d: %s", offset, status, resp.Body())
	}
	return string(resp.Header.Peek("Stream-Media-Id")), nil
}

func (c *cloudflareStream) GetVideo(ctx context.Context, videoID string) (*StreamVideo, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.endpoint + "/" + videoID)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+c.token)

	if err := doFast(ctx, c.client, req, resp); err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", videoID, err)
	}
	video, err := decodeEnvelope[StreamVideo](resp.StatusCode(), resp.Body())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video %s: %w", videoID, err)
	}
	return video, nil
}
