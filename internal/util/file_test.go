package util

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDetectMimeType(t *testing.T) {
	pdf := append([]byte("%PDF-1.7\n"), bytes.Repeat([]byte{0x20}, 64)...)
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	t.Run("pdf accepted", func(t *testing.T) {
		mime, err := DetectMimeType(bytes.NewReader(pdf), AllowedUploadTypes)
		if err != nil {
			t.Fatalf("DetectMimeType: %v", err)
		}
		if mime != "application/pdf" {
			t.Errorf("mime = %q, want application/pdf", mime)
		}
	})

	t.Run("png accepted", func(t *testing.T) {
		mime, err := DetectMimeType(bytes.NewReader(png), AllowedUploadTypes)
		if err != nil {
			t.Fatalf("DetectMimeType: %v", err)
		}
		if mime != "image/png" {
			t.Errorf("mime = %q, want image/png", mime)
		}
	})

	t.Run("executable rejected", func(t *testing.T) {
		exe := []byte{0x7f, 'E', 'L', 'F', 2, 1, 1, 0}
		mime, err := DetectMimeType(bytes.NewReader(exe), AllowedUploadTypes)
		if !errors.Is(err, ErrFileTypeNotAllowed) {
			t.Errorf("err = %v, want ErrFileTypeNotAllowed", err)
		}
		if mime == "" {
			t.Error("rejected type should still be reported")
		}
	})

	t.Run("plain text rejected", func(t *testing.T) {
		_, err := DetectMimeType(strings.NewReader("hola mundo"), AllowedUploadTypes)
		if !errors.Is(err, ErrFileTypeNotAllowed) {
			t.Errorf("err = %v, want ErrFileTypeNotAllowed", err)
		}
	})
}

func TestIsAllowedUploadType(t *testing.T) {
	if !IsAllowedUploadType("application/pdf") {
		t.Error("pdf should be allowed")
	}
	if IsAllowedUploadType("application/zip") {
		t.Error("zip should not be allowed")
	}
	if IsAllowedUploadType("") {
		t.Error("empty type should not be allowed")
	}
}
