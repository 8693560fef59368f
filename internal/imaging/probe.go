// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging wraps image decoding and thumbnail generation for the
// media library.
package imaging

import (
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder

	_ "golang.org/x/image/webp" // WebP decoder
)

// ThumbnailMaxSize bounds the longest edge of generated thumbnails.
const ThumbnailMaxSize = 320

// Dimensions reads the pixel size of an image without decoding the full
// frame. The reader must be positioned at the start of the file.
func Dimensions(r io.Reader) (width, height int, err error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}

// ThumbnailPath derives the thumbnail filename for a stored media file.
// Thumbnails are always encoded as JPEG, so WebP sources get a thumbnail too.
func ThumbnailPath(storedPath string) string {
	ext := filepath.Ext(storedPath)
	return strings.TrimSuffix(storedPath, ext) + "_thumb.jpg"
}

// Thumbnail writes a bounded-size JPEG thumbnail next to the source image.
// Returns the thumbnail path.
func Thumbnail(srcPath string) (string, error) {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}

	thumb := imaging.Fit(img, ThumbnailMaxSize, ThumbnailMaxSize, imaging.Lanczos)

	dst := ThumbnailPath(srcPath)
	if err := imaging.Save(thumb, dst, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("saving thumbnail: %w", err)
	}
	return dst, nil
}
