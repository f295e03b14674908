package httpapi

import (
	"crypto/sha256"
	"embed"
	"encoding/hex"
	"net/http"
)

//go:embed openapi.yaml swagger.html
var docsFS embed.FS

type staticDoc struct {
	body        []byte
	contentType string
	etag        string
}

func mustDoc(name, contentType string) staticDoc {
	body, err := docsFS.ReadFile(name)
	if err != nil {
		panic(err)
	}
	sum := sha256.Sum256(body)
	return staticDoc{body: body, contentType: contentType, etag: `"` + hex.EncodeToString(sum[:8]) + `"`}
}

var (
	openAPIDoc = mustDoc("openapi.yaml", "application/yaml; charset=utf-8")
	swaggerDoc = mustDoc("swagger.html", "text/html; charset=utf-8")
)

func (d staticDoc) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("ETag", d.etag)
	if r.Header.Get("If-None-Match") == d.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", d.contentType)
	_, _ = w.Write(d.body)
}

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.OpenAPI")
	defer span.End()
	openAPIDoc.serve(w, r)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	_, span := startSpan(r.Context(), "httpapi.Handler.SwaggerUI")
	defer span.End()
	swaggerDoc.serve(w, r)
}
