// Copyright (c) 2025-2026 MENALANE
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

// htmlSanitizer strips dangerous markup from rendered content bodies.
// UGCPolicy keeps safe formatting tags while dropping scripts and event
// handlers.
var htmlSanitizer = bluemonday.UGCPolicy()

// RenderBodyHTML converts a markdown content body to sanitized HTML.
// Sanitization happens at render time, so the stored body stays exactly as
// the author wrote it.
func RenderBodyHTML(body string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
