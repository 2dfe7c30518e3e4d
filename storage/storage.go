package storage

import (
	"context"
	"mime"
	"strings"

	"github.com/google/uuid"
)

// Store persists media binaries and returns the public reference path
// used in replies and alerts.
type Store interface {
	Save(ctx context.Context, kind string, data []byte, mimeType string) (string, error)
}

var wellKnownExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"video/mp4":  ".mp4",
	"video/3gpp": ".3gp",
	"audio/ogg":  ".ogg",
	"audio/mpeg": ".mp3",
	"audio/amr":  ".amr",
	"audio/aac":  ".aac",
}

// objectKey builds a collision-resistant key grouped by media kind,
// e.g. "audio/6b1f...c2.ogg".
func objectKey(kind, mimeType string) string {
	base := mimeType
	if i := strings.Index(base, ";"); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	ext, ok := wellKnownExt[base]
	if !ok {
		if exts, err := mime.ExtensionsByType(base); err == nil && len(exts) > 0 {
			ext = exts[0]
		} else {
			ext = ".bin"
		}
	}
	return kind + "/" + uuid.New().String() + ext
}
