package tmdb

import "strings"

// Image sizes accepted by the TMDB image CDN
const (
	ImageSizeW300     = "w300"
	ImageSizeW780     = "w780"
	ImageSizeW1280    = "w1280"
	ImageSizeOriginal = "original"
)

// ImageURL builds a CDN URL for an image path. An empty path yields "".
func ImageURL(baseURL, size, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if baseURL == "" {
		baseURL = DefaultImageBaseURL
	}
	if size == "" {
		size = ImageSizeOriginal
	}
	return strings.TrimRight(baseURL, "/") + "/" + size + "/" + strings.TrimLeft(path, "/")
}

// WebURL returns the themoviedb.org page for an item
func WebURL(mediaType, id string) string {
	return "https://www.themoviedb.org/" + mediaType + "/" + id
}
