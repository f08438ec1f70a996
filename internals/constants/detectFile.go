package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeImage   = 1
	FileTypePDF     = 2
	FileTypeUnknown = 99
)

func DetectFileTypeFromExt(filename string) int {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileTypeImage
	case ".pdf":
		return FileTypePDF
	default:
		return FileTypeUnknown // Tidak diketahui
	}
}

// IsImageFile bukti transfer & avatar hanya boleh gambar
func IsImageFile(filename string) bool {
	return DetectFileTypeFromExt(filename) == FileTypeImage
}
