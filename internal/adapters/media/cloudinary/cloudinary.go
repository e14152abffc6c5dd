package cloudinary

import (
	"context"
	"errors"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type Client struct {
	cld *cloudinary.Cloudinary
}

func New(cloudinaryURL string) (*Client, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &Client{cld: cld}, nil
}

// Upload sends an image payload (base64 data URI) to Cloudinary and returns
// the durable secure URL.
func (c *Client) Upload(ctx context.Context, image string) (string, error) {
	res, err := c.cld.Upload.Upload(ctx, image, uploader.UploadParams{
		PublicID: uuid.NewString(),
		Folder:   "profile_pics",
	})
	if err != nil {
		return "", err
	}
	// The SDK reports some API failures in the body instead of err.
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	return res.SecureURL, nil
}
