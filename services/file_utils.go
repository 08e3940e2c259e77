package services

import (
	"path/filepath"
	"strings"

	"github.com/Viniciustertuliano/photovault/config"
)

// sanitizeFilename keeps only the base name of an uploaded file. The display
// name is otherwise preserved; storage keys never derive from it.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	if name == "" {
		return "file"
	}
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return "file"
	}
	return name
}

// extensionOf returns the text after the last dot, or "" when there is none.
func extensionOf(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return name[idx+1:]
}

func isExtensionAllowed(ext string) bool {
	ext = strings.ToLower(ext)
	if ext == "" {
		return false
	}
	for _, allowed := range config.AppConfig.Storage.AllowedExtensionList() {
		if allowed == "*" || allowed == ext {
			return true
		}
	}
	return false
}

func getMimeType(ext string) string {
	mimeTypes := map[string]string{
		"jpg":  "image/jpeg",
		"jpeg": "image/jpeg",
		"png":  "image/png",
		"gif":  "image/gif",
		"bmp":  "image/bmp",
		"webp": "image/webp",
		"tif":  "image/tiff",
		"tiff": "image/tiff",
		"pdf":  "application/pdf",
		"txt":  "text/plain",
		"mp4":  "video/mp4",
		"zip":  "application/zip",
	}
	if mt, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return mt
	}
	return "application/octet-stream"
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true,
	"gif": true, "bmp": true, "tif": true, "tiff": true,
}

func IsImageFile(filename string) bool {
	return imageExtensions[strings.ToLower(extensionOf(filename))]
}

func thumbnailKey(storedName string) string {
	return config.AppConfig.Storage.ThumbnailDir + "/" + storedName + ".jpg"
}
