package ocr

import (
	"net/http"

	"github.com/pkg/errors"
)

const MaxImageBytes = 10 << 20

var (
	ErrInvalidImage   = errors.New("invalid menu image")
	ErrOCRUnavailable = errors.New("menu text extraction unavailable")
)

var allowedTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// ValidateImage sniffs the leading bytes of an upload and checks the total
// size. It returns the detected content type.
func ValidateImage(head []byte, size int64) (string, error) {
	if size <= 0 {
		return "", errors.Wrap(ErrInvalidImage, "empty upload")
	}
	if size > MaxImageBytes {
		return "", errors.Wrapf(ErrInvalidImage, "image is %d bytes, limit is %d", size, MaxImageBytes)
	}
	contentType := http.DetectContentType(head)
	if _, ok := allowedTypes[contentType]; !ok {
		return "", errors.Wrapf(ErrInvalidImage, "unsupported content type %q", contentType)
	}
	return contentType, nil
}
