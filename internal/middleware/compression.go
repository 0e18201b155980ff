package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are scraped or polled by machines and stay plain.
var uncompressedPaths = []string{"/metrics", "/healthz", "/readyz"}

// Compression gzips responses for clients that accept it.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(uncompressedPaths))
}
