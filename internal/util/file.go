package util

import (
	"io"
	"net/http"
	"strings"
)

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

// MaxUploadSize caps submission uploads at 10MB, matching what the grading
// workflow accepts.
const MaxUploadSize = 10 << 20

// AllowedUploadTypes lists the MIME types accepted for assignment
// submissions: documents, slides and images only.
var AllowedUploadTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"image/jpeg",
	"image/png",
	"image/gif",
}

// DetectMimeType sniffs the MIME type from the first 512 bytes and checks it
// against the allow list. The sniffed type is returned either way so callers
// can report what was rejected.
func DetectMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if mimeType == allowed || strings.HasPrefix(mimeType, allowed) {
			return mimeType, nil
		}
	}

	return mimeType, ErrFileTypeNotAllowed
}

func IsAllowedUploadType(contentType string) bool {
	for _, allowed := range AllowedUploadTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
