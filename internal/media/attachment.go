package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrEmptyAttachment is returned when an attachment carries no bytes.
	ErrEmptyAttachment = errors.New("media: attachment is empty")
	// ErrTooLarge is returned when an attachment exceeds the configured cap.
	ErrTooLarge = errors.New("media: attachment exceeds size limit")
	// ErrTooMany is returned when a request carries more attachments than allowed.
	ErrTooMany = errors.New("media: too many attachments")
)

// Attachment is one media file ready to be inlined into an inference request.
type Attachment struct {
	Name     string
	MIMEType string
	Data     []byte
}

// EncodedAttachment is the wire form used by the HTTP API: base64 content plus
// a MIME type tag, matching the inline-data shape the inference backend takes.
type EncodedAttachment struct {
	Name     string `json:"name,omitempty"`
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Decode converts the wire form back into raw bytes. The MIME type is sniffed
// from content when the caller did not provide one.
func (e EncodedAttachment) Decode() (Attachment, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(e.Data))
	if err != nil {
		return Attachment{}, fmt.Errorf("media: invalid base64 content: %w", err)
	}
	if len(raw) == 0 {
		return Attachment{}, ErrEmptyAttachment
	}
	mimeType := strings.TrimSpace(e.MIMEType)
	if mimeType == "" {
		mimeType = http.DetectContentType(raw)
	}
	return Attachment{Name: e.Name, MIMEType: mimeType, Data: raw}, nil
}

// Encode produces the wire form of an attachment.
func Encode(a Attachment) EncodedAttachment {
	return EncodedAttachment{
		Name:     a.Name,
		MIMEType: a.MIMEType,
		Data:     base64.StdEncoding.EncodeToString(a.Data),
	}
}

// DecodeAll decodes a slice of wire attachments preserving the caller's
// selection order, enforcing count and per-file size limits.
func DecodeAll(encoded []EncodedAttachment, maxCount int, maxBytes int64) ([]Attachment, error) {
	if maxCount > 0 && len(encoded) > maxCount {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrTooMany, len(encoded), maxCount)
	}
	attachments := make([]Attachment, 0, len(encoded))
	for i, e := range encoded {
		a, err := e.Decode()
		if err != nil {
			return nil, fmt.Errorf("media: attachment %d: %w", i, err)
		}
		if maxBytes > 0 && int64(len(a.Data)) > maxBytes {
			return nil, fmt.Errorf("media: attachment %d: %w", i, ErrTooLarge)
		}
		attachments = append(attachments, a)
	}
	return attachments, nil
}
