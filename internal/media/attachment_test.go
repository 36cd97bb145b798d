package media

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncodedAttachment_Decode(t *testing.T) {
	e := EncodedAttachment{
		Name:     "pill.jpg",
		MIMEType: "image/jpeg",
		Data:     base64.StdEncoding.EncodeToString([]byte("fake-jpeg-bytes")),
	}

	a, err := e.Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.MIMEType != "image/jpeg" {
		t.Errorf("expected declared mime type, got %s", a.MIMEType)
	}
	if string(a.Data) != "fake-jpeg-bytes" {
		t.Errorf("unexpected decoded content: %q", a.Data)
	}
}

func TestEncodedAttachment_Decode_SniffsMissingMIME(t *testing.T) {
	// PNG magic bytes so DetectContentType has something to sniff.
	png := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0}
	e := EncodedAttachment{Data: base64.StdEncoding.EncodeToString(png)}

	a, err := e.Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.MIMEType != "image/png" {
		t.Errorf("expected sniffed image/png, got %s", a.MIMEType)
	}
}

func TestEncodedAttachment_Decode_Errors(t *testing.T) {
	if _, err := (EncodedAttachment{Data: "!!not base64!!"}).Decode(); err == nil {
		t.Error("expected error for invalid base64")
	}
	if _, err := (EncodedAttachment{Data: ""}).Decode(); !errors.Is(err, ErrEmptyAttachment) {
		t.Errorf("expected ErrEmptyAttachment, got %v", err)
	}
}

func TestDecodeAll_PreservesOrder(t *testing.T) {
	encoded := []EncodedAttachment{
		{Name: "first", MIMEType: "image/jpeg", Data: base64.StdEncoding.EncodeToString([]byte("a"))},
		{Name: "second", MIMEType: "image/png", Data: base64.StdEncoding.EncodeToString([]byte("b"))},
		{Name: "third", MIMEType: "audio/webm", Data: base64.StdEncoding.EncodeToString([]byte("c"))},
	}

	attachments, err := DecodeAll(encoded, 8, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if attachments[i].Name != want {
			t.Errorf("position %d: expected %s, got %s", i, want, attachments[i].Name)
		}
	}
}

func TestDecodeAll_Limits(t *testing.T) {
	big := EncodedAttachment{MIMEType: "image/jpeg", Data: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 100)))}

	if _, err := DecodeAll([]EncodedAttachment{big}, 0, 10); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if _, err := DecodeAll([]EncodedAttachment{big, big}, 1, 0); !errors.Is(err, ErrTooMany) {
		t.Errorf("expected ErrTooMany, got %v", err)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	a := Attachment{Name: "note.webm", MIMEType: "audio/webm", Data: []byte("voice")}

	decoded, err := Encode(a).Decode()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.MIMEType != a.MIMEType || string(decoded.Data) != string(a.Data) {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
}
