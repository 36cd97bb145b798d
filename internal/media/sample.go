package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SampleFetcher downloads fixed demo media so users can try a module without
// uploading anything.
type SampleFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewSampleFetcher creates a fetcher with the given timeout and size cap.
func NewSampleFetcher(timeout time.Duration, maxBytes int64) *SampleFetcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SampleFetcher{
		client:   &http.Client{Timeout: timeout},
		maxBytes: maxBytes,
	}
}

// Fetch downloads the sample at url and returns it as an attachment. The
// served Content-Type wins over the fallback MIME type when present, the same
// preference the upload path applies.
func (f *SampleFetcher) Fetch(ctx context.Context, url, filename, fallbackMIME string) (Attachment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Attachment{}, fmt.Errorf("media: failed to build sample request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Attachment{}, fmt.Errorf("media: failed to fetch sample: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Attachment{}, fmt.Errorf("media: failed to fetch sample (status %d)", resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if f.maxBytes > 0 {
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return Attachment{}, fmt.Errorf("media: failed to read sample body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return Attachment{}, ErrTooLarge
	}
	if len(data) == 0 {
		return Attachment{}, ErrEmptyAttachment
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = fallbackMIME
	}
	return Attachment{Name: filename, MIMEType: mimeType, Data: data}, nil
}
