package services

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/nevrodda11/torny-aws-api/metrics"
	"github.com/nevrodda11/torny-aws-api/models"
	"github.com/nevrodda11/torny-aws-api/repositories"
	"github.com/nevrodda11/torny-aws-api/storage"
	"github.com/rs/zerolog"
)

const (
	defaultVideoFilename = "video.mp4"
	pendingVideoBatch    = 50
)

type VideoChunkInput struct {
	ChunkData     string  `json:"chunk_data"`
	EntityType    string  `json:"entity_type"`
	EntityID      int     `json:"entity_id"`
	ChunkIndex    *int    `json:"chunk_index"`
	TotalChunks   int     `json:"total_chunks"`
	UploadURL     string  `json:"upload_url"`
	UploadOffset  *int64  `json:"upload_offset"`
	AchievementID *int    `json:"achievement_id"`
	Title         *string `json:"title"`
	Caption       *string `json:"caption"`
	Filename      string  `json:"filename"`
}

// VideoChunkResult reports how far an upload got. Video is set once the last chunk is stored;
// UploadURL is set when a multi-chunk upload has just been opened.
type VideoChunkResult struct {
	UploadURL string
	Video     *models.Video
}

type VideoService interface {
	UploadChunk(ctx context.Context, input VideoChunkInput) (*VideoChunkResult, error)
	RefreshPending(ctx context.Context) (int, error)
}

type videoService struct {
	videoRepo repositories.VideoRepository
	stream    storage.VideoStreamer
}

func NewVideoService(videoRepo repositories.VideoRepository, stream storage.VideoStreamer) VideoService {
	return &videoService{videoRepo: videoRepo, stream: stream}
}

func (s *videoService) UploadChunk(ctx context.Context, input VideoChunkInput) (*VideoChunkResult, error) {
	if input.ChunkData == "" || input.EntityType == "" || input.EntityID <= 0 ||
		input.ChunkIndex == nil || input.TotalChunks <= 0 {
		return nil, errMissingFields
	}
	owner := models.VideoOwner(strings.ToLower(input.EntityType))
	if _, ok := owner.Column(); !ok {
		return nil, validationError("Invalid entity_type")
	}
	chunkIndex := *input.ChunkIndex
	if chunkIndex < 0 || chunkIndex >= input.TotalChunks {
		return nil, validationError("chunk_index must be between 0 and total_chunks - 1")
	}
	if input.UploadURL == "" && chunkIndex > 0 {
		return nil, validationError("upload_url is required for subsequent chunks")
	}

	chunk, err := storage.DecodeBase64Image(input.ChunkData)
	if err != nil {
		return nil, validationError("Invalid base64 chunk data")
	}

	filename := input.Filename
	if filename == "" {
		filename = defaultVideoFilename
	}
	log := zerolog.Ctx(ctx).With().Int("chunk_index", chunkIndex).Int("total_chunks", input.TotalChunks).Logger()

	if input.UploadURL == "" {
		if input.TotalChunks == 1 {
			padded := storage.PadSingleChunk(chunk)
			uploadURL, err := s.stream.InitUpload(ctx, int64(len(padded)), filename)
			if err != nil {
				return nil, s.uploadFailed(err)
			}
			mediaID, err := s.stream.UploadChunk(ctx, uploadURL, 0, padded)
			if err != nil {
				return nil, s.uploadFailed(err)
			}
			log.Debug().Str("media_id", mediaID).Msg("single chunk video uploaded")
			return s.finish(ctx, input, owner, mediaIDOrFromURL(mediaID, uploadURL))
		}

		// The client sends every chunk, including the first, against the returned URL.
		uploadURL, err := s.stream.InitUpload(ctx, int64(len(chunk))*int64(input.TotalChunks), filename)
		if err != nil {
			return nil, s.uploadFailed(err)
		}
		log.Debug().Msg("video upload opened")
		return &VideoChunkResult{UploadURL: uploadURL}, nil
	}

	offset := int64(chunkIndex) * int64(len(chunk))
	if input.UploadOffset != nil {
		offset = *input.UploadOffset
	}
	mediaID, err := s.stream.UploadChunk(ctx, input.UploadURL, offset, chunk)
	if err != nil {
		return nil, s.uploadFailed(err)
	}

	if chunkIndex == input.TotalChunks-1 {
		return s.finish(ctx, input, owner, mediaIDOrFromURL(mediaID, input.UploadURL))
	}
	return &VideoChunkResult{}, nil
}

func (s *videoService) uploadFailed(err error) error {
	metrics.Uploads.WithLabelValues("video", "error").Inc()
	return fmt.Errorf("failed to upload video: %w", err)
}

// mediaIDOrFromURL falls back to the last path segment of the upload URL, which carries the media id.
func mediaIDOrFromURL(mediaID, uploadURL string) string {
	if mediaID != "" {
		return mediaID
	}
	u, err := url.Parse(uploadURL)
	if err != nil {
		return ""
	}
	return path.Base(u.Path)
}

func (s *videoService) finish(ctx context.Context, input VideoChunkInput, owner models.VideoOwner, mediaID string) (*VideoChunkResult, error) {
	meta, err := s.stream.GetVideo(ctx, mediaID)
	if err != nil {
		return nil, s.uploadFailed(err)
	}

	video := &models.Video{
		CloudflareVideoID: mediaID,
		OwnerType:         owner,
		OwnerID:           input.EntityID,
		AchievementID:     input.AchievementID,
		Title:             input.Title,
		Caption:           input.Caption,
	}
	applyStreamMetadata(video, meta)

	if err := s.videoRepo.Create(ctx, video); err != nil {
		return nil, fmt.Errorf("failed to store video: %w", err)
	}

	metrics.Uploads.WithLabelValues("video", "success").Inc()
	zerolog.Ctx(ctx).Info().Int("video_id", video.ID).Str("cloudflare_id", mediaID).Str("status", string(video.Status)).Msg("video stored")
	return &VideoChunkResult{Video: video}, nil
}

func applyStreamMetadata(v *models.Video, meta *storage.StreamVideo) {
	v.Status = models.VideoStatusFromStream(meta.Status.State)
	v.PlaybackURL = stringPtr(meta.Playback.HLS)
	v.ThumbnailURL = stringPtr(meta.Thumbnail)
	if meta.Duration > 0 {
		d := meta.Duration
		v.Duration = &d
	}
	if meta.Input.Width > 0 {
		w, h := meta.Input.Width, meta.Input.Height
		v.Width, v.Height = &w, &h
	}
}

// RefreshPending re-reads Stream metadata for videos still processing and returns how many changed.
func (s *videoService) RefreshPending(ctx context.Context) (int, error) {
	videos, err := s.videoRepo.ListPending(ctx, pendingVideoBatch)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending videos: %w", err)
	}

	log := zerolog.Ctx(ctx)
	updated := 0
	for i := range videos {
		v := &videos[i]
		meta, err := s.stream.GetVideo(ctx, v.CloudflareVideoID)
		if err != nil {
			log.Warn().Err(err).Str("cloudflare_id", v.CloudflareVideoID).Msg("failed to fetch video metadata")
			continue
		}

		applyStreamMetadata(v, meta)
		metrics.VideosRefreshed.WithLabelValues(string(v.Status)).Inc()
		if v.Status == models.VideoStatusPending {
			continue
		}

		if err := s.videoRepo.UpdateFromStream(ctx, v); err != nil {
			log.Warn().Err(err).Int("video_id", v.ID).Msg("failed to update video")
			continue
		}
		updated++
	}
	return updated, nil
}
