// Package cloudinary stores Section 1 answer recordings so administrators can
// replay them from the dashboard.
package cloudinary

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// RecordingStore uploads answer recordings and returns playable URLs.
type RecordingStore interface {
	UploadRecording(ctx context.Context, candidateID string, questionID uint, reader io.Reader) (string, error)
}

// Service implements RecordingStore against Cloudinary.
type Service struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs a Cloudinary service instance.
func New(cfg Config, logger zerolog.Logger) (*Service, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Service{
		client: cld,
		folder: cfg.Folder,
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// UploadRecording sends the audio clip to Cloudinary and returns a secure URL.
func (s *Service) UploadRecording(ctx context.Context, candidateID string, questionID uint, reader io.Reader) (string, error) {
	publicID := fmt.Sprintf("%s-q%d-%d", sanitizeID(candidateID), questionID, time.Now().Unix())

	params := uploader.UploadParams{
		Folder:       strings.Trim(s.folder, "/"),
		PublicID:     publicID,
		ResourceType: "video", // cloudinary stores audio under the video resource type
	}

	result, err := s.client.Upload.Upload(ctx, reader, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload recording: %w", err)
	}

	s.logger.Info().Str("public_id", result.PublicID).Msg("recording uploaded")
	return result.SecureURL, nil
}

func sanitizeID(id string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, id)

	cleaned = strings.Trim(cleaned, "-")
	if cleaned == "" {
		cleaned = "candidate"
	}
	return cleaned
}
