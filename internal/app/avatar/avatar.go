/*
Package avatar validates and normalizes uploaded profile images.

Every accepted upload is decoded, cropped-and-resized to a fixed square, and
re-encoded as PNG, so stored avatars always share one size and format no
matter what the client sent.
*/
package avatar

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// MaxUploadSize is the largest accepted avatar file (1 MB).
	MaxUploadSize int64 = 1 << 20

	// Size is the edge length of the stored square avatar in pixels.
	Size = 250

	// ContentType is the media type of every stored avatar.
	ContentType = "image/png"
)

// ErrNotAnImage reports upload bytes that could not be decoded as an image.
var ErrNotAnImage = errors.New("avatar: data is not a decodable image")

// allowedExtensions mirrors the upload filter: only these file extensions
// are accepted, regardless of the actual content sniffed later.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// AllowedExtension reports whether the uploaded filename carries an accepted
// image extension.
func AllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedExtensions[ext]
	return ok
}

// Normalize decodes the uploaded image and re-encodes it as a Size x Size PNG.
// The image is scaled and center-cropped to fill the square.
func Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrNotAnImage
	}

	resized := imaging.Fill(img, Size, Size, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
