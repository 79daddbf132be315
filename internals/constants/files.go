package constants

import (
	"path/filepath"
	"strings"
)

const (
	MaxLogoBytes   = 5 << 20
	LogoMaxSidePx  = 600
	ContentTypePDF = "application/pdf"
)

// ImageContentTypeFromExt returns "" for extensions the logo pipeline cannot decode.
func ImageContentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
