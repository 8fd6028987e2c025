package storage

import (
	"errors"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize caps payment proofs and room images at 5 MB.
const MaxImageSize = 5 << 20

var (
	ErrFileTooLarge = errors.New("file must not exceed 5MB")
	ErrNotAnImage   = errors.New("file must be a JPEG, PNG, GIF or WEBP image")
	ErrEmptyFile    = errors.New("file is empty")
)

var allowedImages = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DetectImage sniffs the content rather than trusting the client's filename
// and returns the extension to store it under.
func DetectImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if len(data) > MaxImageSize {
		return "", ErrFileTooLarge
	}

	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		if ext, ok := allowedImages[m.String()]; ok {
			return ext, nil
		}
	}
	return "", ErrNotAnImage
}
