package testhelpers

import "context"

// StubImageStore satisfies service.ImageStore without touching S3: every
// upload succeeds and returns the same URL.
type StubImageStore struct {
	URL string
}

func (s StubImageStore) Upload(ctx context.Context, data []byte, contentType string) (string, error) {
	if s.URL != "" {
		return s.URL, nil
	}
	return "https://images.test/stub.png", nil
}
