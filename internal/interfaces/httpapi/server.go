package httpapi

import (
	"net/http"

	"github.com/thedyrex/pickems/internal/platform/id"
	"github.com/thedyrex/pickems/internal/platform/logging"
)

type middleware func(http.Handler) http.Handler

// chain applies mws so that the first one listed is the outermost.
func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// NewRouter mounts every route behind request-id, tracing, access log,
// CORS and panic recovery, outermost first.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	requestIDs id.Generator,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if requestIDs == nil {
		requestIDs = id.NewUUIDGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, swaggerEnabled)
	registerPublicRoutes(mux, handler)
	registerPlayerRoutes(mux, handler, verifier)
	registerAdminRoutes(mux, handler, verifier)

	return chain(mux,
		func(h http.Handler) http.Handler { return RequestID(requestIDs, h) },
		RequestTracing,
		func(h http.Handler) http.Handler { return RequestLogging(logger, h) },
		func(h http.Handler) http.Handler { return CORS(corsAllowedOrigins, h) },
		func(h http.Handler) http.Handler { return recoverPanic(logger, h) },
	)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
