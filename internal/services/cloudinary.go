package services

import (
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryService re-hosts generated images. DALL-E result URLs expire
// after a short window, so when credentials are configured the provider URL
// is mirrored to Cloudinary and the durable URL returned instead.
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService(cloudName, apiKey, apiSecret string) (*CloudinaryService, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryService{cld: cld}, nil
}

// MirrorImage uploads the image at imageURL (Cloudinary fetches remote URLs
// directly) and returns the hosted secure URL.
func (s *CloudinaryService) MirrorImage(ctx context.Context, imageURL string) (string, error) {
	uploadResult, err := s.cld.Upload.Upload(ctx, imageURL, uploader.UploadParams{
		Folder:   "gmb-posts",
		PublicID: uuid.NewString(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
	}
	return uploadResult.SecureURL, nil
}
