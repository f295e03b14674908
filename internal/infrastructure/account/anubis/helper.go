package anubis

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// Only transport and 5xx failures trip the breaker; a rejected token is a
// healthy answer.
func isCircuitFailure(err error) bool {
	return crerr.Is(err, errTransient)
}

// tokenCacheKey never keeps the raw bearer token in memory.
func tokenCacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "token:" + hex.EncodeToString(sum[:])
}

// buildURL joins path onto baseURL. An absolute path URL replaces the base.
func buildURL(baseURL, path string) string {
	path = strings.TrimSpace(path)
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if path = strings.TrimLeft(path, "/"); path == "" {
		return base
	}
	return base + "/" + path
}
