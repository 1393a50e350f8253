package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryArchive struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (m *memoryArchive) Upload(_ context.Context, key, _ string, r io.Reader) (*UploadResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[key] = data
	return &UploadResult{Key: key}, nil
}

func (m *memoryArchive) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memoryArchive) GetPublicURL(key string) string { return "https://archive/" + key }

func testConfig(baseURL string) CloudflareConfig {
	return CloudflareConfig{
		AccountID:         "acc",
		APIToken:          "img-token",
		StreamToken:       "stream-token",
		APIBaseURL:        baseURL,
		ImagesDeliveryURL: "https://imagedelivery.net/hash",
	}
}

func TestCloudflareImagesUpload(t *testing.T) {
	var gotFile []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/accounts/acc/images/v1", r.URL.Path)
		assert.Equal(t, "Bearer img-token", r.Header.Get("Authorization"))

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "logo.png", hdr.Filename)
		gotFile, _ = io.ReadAll(f)

		_, _ = io.WriteString(w, `{"success":true,"errors":[],"result":{"id":"img-1","filename":"logo.png"}}`)
	}))
	defer srv.Close()

	archive := &memoryArchive{}
	uploader := NewCloudflareImages(testConfig(srv.URL), archive)

	img, err := uploader.UploadImage(context.Background(), []byte("pngdata"), "logo.png")
	require.NoError(t, err)

	assert.Equal(t, []byte("pngdata"), gotFile)
	assert.Equal(t, "img-1", img.ID)
	assert.Equal(t, "https://imagedelivery.net/hash/img-1", img.URL)
	assert.Equal(t, "https://imagedelivery.net/hash/img-1/public", img.Variants.Public)
	assert.Equal(t, "https://imagedelivery.net/hash/img-1/thumbnail", img.Variants.Thumbnail)
	assert.Equal(t, "https://imagedelivery.net/hash/img-1/avatar", img.Variants.Avatar)
	assert.Equal(t, []byte("pngdata"), archive.objects["images/img-1"])
}

func TestWriteFilePart(t *testing.T) {
	var body bytes.Buffer
	contentType, err := writeFilePart(&body, "file", "team.jpg", []byte("jpegdata"))
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)

	form, err := multipart.NewReader(&body, params["boundary"]).ReadForm(1 << 20)
	require.NoError(t, err)
	require.Len(t, form.File["file"], 1)
	assert.Equal(t, "team.jpg", form.File["file"][0].Filename)

	f, err := form.File["file"][0].Open()
	require.NoError(t, err)
	defer f.Close()
	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpegdata"), got)
}

func TestCloudflareImagesUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"success":false,"errors":[{"code":5400,"message":"Bad image"}]}`)
	}))
	defer srv.Close()

	uploader := NewCloudflareImages(testConfig(srv.URL), nil)
	_, err := uploader.UploadImage(context.Background(), []byte("x"), "x.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bad image")
}

func TestCloudflareImagesDelete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/accounts/acc/images/v1/img-9", r.URL.Path)
		_, _ = io.WriteString(w, `{"success":true,"errors":[],"result":{}}`)
	}))
	defer srv.Close()

	archive := &memoryArchive{objects: map[string][]byte{"images/img-9": []byte("orig")}}
	require.NoError(t, NewCloudflareImages(testConfig(srv.URL), archive).DeleteImage(context.Background(), "img-9"))
	assert.Empty(t, archive.objects)
}

func TestCloudflareStreamFlow(t *testing.T) {
	var patched bytes.Buffer
	var srvURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/accounts/acc/stream":
			assert.Equal(t, "Bearer stream-token", r.Header.Get("Authorization"))
			assert.Equal(t, "1.0.0", r.Header.Get("Tus-Resumable"))
			assert.Equal(t, "10", r.Header.Get("Upload-Length"))
			assert.Equal(t, "filename "+base64.StdEncoding.EncodeToString([]byte("clip.mp4")), r.Header.Get("Upload-Metadata"))
			w.Header().Set("Location", srvURL+"/tus/abc")
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodPatch && r.URL.Path == "/tus/abc":
			assert.Equal(t, "application/offset+octet-stream", r.Header.Get("Content-Type"))
			assert.Equal(t, "5", r.Header.Get("Upload-Offset"))
			body, _ := io.ReadAll(r.Body)
			patched.Write(body)
			w.Header().Set("Stream-Media-Id", "vid-1")
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/accounts/acc/stream/vid-1":
			_, _ = io.WriteString(w, `{"success":true,"result":{"uid":"vid-1","thumbnail":"https://t","duration":12.5,
				"playback":{"hls":"https://h.m3u8"},"input":{"width":1920,"height":1080},"status":{"state":"ready"}}}`)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	srvURL = srv.URL

	streamer := NewCloudflareStream(testConfig(srv.URL))
	ctx := context.Background()

	uploadURL, err := streamer.InitUpload(ctx, 10, "clip.mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(uploadURL, "/tus/abc"))

	mediaID, err := streamer.UploadChunk(ctx, uploadURL, 5, []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "vid-1", mediaID)
	assert.Equal(t, "hello", patched.String())

	video, err := streamer.GetVideo(ctx, mediaID)
	require.NoError(t, err)
	assert.Equal(t, "https://h.m3u8", video.Playback.HLS)
	assert.Equal(t, 1920, video.Input.Width)
	assert.Equal(t, "ready", video.Status.State)
	assert.InDelta(t, 12.5, video.Duration, 0.001)
}

func TestPadSingleChunk(t *testing.T) {
	small := PadSingleChunk([]byte("abc"))
	assert.Len(t, small, MinSingleChunkSize)
	assert.Equal(t, []byte("abc"), small[:3])

	exact := make([]byte, MinSingleChunkSize)
	assert.Len(t, PadSingleChunk(exact), MinSingleChunkSize+ChunkBlockSize)

	large := make([]byte, MinSingleChunkSize+100)
	padded := PadSingleChunk(large)
	assert.Zero(t, len(padded)%ChunkBlockSize)
	assert.GreaterOrEqual(t, len(padded), MinSingleChunkSize)
}
