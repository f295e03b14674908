package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// envReader reads typed settings and keeps the first failure, so Load can
// read everything and check err once.
type envReader struct {
	err error
}

// raw returns the variable, or fallback when it is unset or blank.
func (r *envReader) raw(key, fallback string) string {
	if v := os.Getenv(key); strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func (r *envReader) str(key, fallback string) string {
	return strings.TrimSpace(r.raw(key, fallback))
}

func (r *envReader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *envReader) boolean(key string, fallback bool) bool {
	v, err := strconv.ParseBool(r.str(key, strconv.FormatBool(fallback)))
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

// integer reads an integer that must be at least lo.
func (r *envReader) integer(key string, fallback, lo int) int {
	v, err := strconv.Atoi(r.str(key, strconv.Itoa(fallback)))
	switch {
	case err != nil:
		r.fail(fmt.Errorf("parse %s: %w", key, err))
	case v < lo:
		r.fail(fmt.Errorf("%s must be >= %d", key, lo))
	}
	return v
}

// duration reads a Go duration. Zero is accepted only when allowZero is set;
// negatives never are.
func (r *envReader) duration(key string, fallback time.Duration, allowZero bool) time.Duration {
	v, err := time.ParseDuration(r.str(key, fallback.String()))
	switch {
	case err != nil:
		r.fail(fmt.Errorf("parse %s: %w", key, err))
	case v < 0 || (v == 0 && !allowZero):
		r.fail(fmt.Errorf("%s must be > 0", key))
	}
	return v
}

func (r *envReader) date(key, fallback string) time.Time {
	v, err := time.Parse(scheduleDateLayout, r.str(key, fallback))
	if err != nil {
		r.fail(fmt.Errorf("parse %s: %w", key, err))
	}
	return v
}

func (r *envReader) csv(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(r.raw(key, fallback), ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// require records msg when cond is false.
func (r *envReader) require(cond bool, msg string) {
	if !cond {
		r.fail(errors.New(msg))
	}
}

// uptraceDSNFromOTLPHeaders pulls uptrace-dsn out of an
// OTEL_EXPORTER_OTLP_HEADERS style "k=v,k=v" list.
func uptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(item, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(v), `"'`)
		}
	}
	return ""
}
