package client

import (
	"context"
	"io"
	"strconv"
)

// MediaService provides media upload operations
type MediaService struct {
	client *Client
}

// Upload sends a file as multipart form data
func (s *MediaService) Upload(ctx context.Context, fileName, contentType string, file io.Reader) (*Media, error) {
	var m Media
	if err := s.client.doUpload(ctx, "/api/media", "file", fileName, contentType, file, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List retrieves the caller's uploaded media
func (s *MediaService) List(ctx context.Context, opts ListOptions) (*Page[Media], error) {
	var page Page[Media]
	if err := s.client.doRequest(ctx, "GET", "/api/media"+opts.query(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Delete removes a media item
func (s *MediaService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", "/api/media/"+strconv.FormatInt(id, 10), nil, nil)
}
