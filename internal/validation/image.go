package validation

import (
	"net/url"
	"strings"
)

// PlaceholderImage is served when a product or farmer image fails the
// allow-list check.
const PlaceholderImage = "/placeholder-produce.png"

// Hosts images may be loaded from: local dev, the production site and its
// object storage, placeholder services, and the in-cluster minio names.
var allowedImageHosts = []string{
	"localhost",
	"127.0.0.1",
	"of.kaayaka.in",
	"mnio.kaayaka.in",
	"placehold.co",
	"via.placeholder.com",
	"minio",
	"organic-farm-minio",
}

// IsValidImageURL accepts same-origin relative paths and absolute http(s)
// URLs whose host is an allow-listed domain or one of its subdomains.
func IsValidImageURL(raw string) bool {
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return strings.HasPrefix(raw, "/")
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := u.Hostname()
	for _, allowed := range allowedImageHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// SanitizeImageURL returns raw when it is relative or allow-listed and the
// fallback otherwise. An empty fallback selects PlaceholderImage. It never
// returns an unvalidated external URL.
func SanitizeImageURL(raw, fallback string) string {
	if fallback == "" {
		fallback = PlaceholderImage
	}
	if raw == "" {
		return fallback
	}
	if strings.HasPrefix(raw, "/") {
		return raw
	}
	if IsValidImageURL(raw) {
		return raw
	}
	return fallback
}
