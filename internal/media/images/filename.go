package images

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Content types accepted for uploads, mapped to their file extensions.
var extensionByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// SniffExtension inspects the leading bytes of an upload and returns the
// matching file extension. Unsupported or unrecognized data errors.
func SniffExtension(data []byte) (string, error) {
	contentType := detectContentType(data)
	ext, ok := extensionByType[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type: %s", contentType)
	}
	return ext, nil
}

// detectContentType checks magic bytes for the formats we accept.
func detectContentType(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF:
		return "image/jpeg"
	case len(data) >= 8 && string(data[:8]) == "\x89PNG\r\n\x1a\n":
		return "image/png"
	case len(data) >= 6 && (string(data[:6]) == "GIF87a" || string(data[:6]) == "GIF89a"):
		return "image/gif"
	case len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WEBP":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

// UniqueFilename builds a collision-free filename from a human-readable
// label (movie title or username): the slug, an underscore, a random
// uuid-derived suffix, and the extension.
// Example: "the_dark_knight_3f8c2a1b.jpg".
func UniqueFilename(label, ext string) string {
	slug := Slugify(label)
	if slug == "" {
		slug = "image"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return slug + "_" + suffix + ext
}

// Slugify lowers the label and replaces everything outside [a-z0-9] with
// underscores, collapsing runs.
func Slugify(label string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
