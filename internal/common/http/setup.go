package http

import (
	"net/http"

	"github.com/mkalinin/tasklight/internal/common/constants"
	"github.com/mkalinin/tasklight/internal/common/httpmetrics"
	"github.com/mkalinin/tasklight/internal/common/logger"
)

// BuildBaseHandler wraps the application handler in the shared
// middleware chain. Order matters: security headers first, recovery
// outside everything that can panic, trace before anything that logs.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler)))))
}
