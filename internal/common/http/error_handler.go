package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/mkalinin/tasklight/internal/common/constants"
	commonerrors "github.com/mkalinin/tasklight/internal/common/errors"
	"github.com/mkalinin/tasklight/internal/common/httpmetrics"
	"github.com/mkalinin/tasklight/internal/common/logger"
	"github.com/mkalinin/tasklight/internal/observability/metrics"
)

// HandleError maps an operation-level failure to the wire envelope.
// Domain errors keep their own code and status; anything else is an
// unexpected failure and becomes a 500 INTERNAL.
func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	if err == nil {
		return
	}

	ctx := r.Context()
	traceID := getTraceIDFromContext(ctx)

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		handleDomainError(w, r, domainErr, traceID, log)
		return
	}

	logFields := logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
	}
	if traceID != "" {
		logFields["trace_id"] = traceID
		w.Header().Set("X-Trace-ID", traceID)
	}

	log.WithFields(ctx, logFields).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, commonerrors.ErrInternalError.Code(), commonerrors.ErrInternalError.Message())
}

func handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError, traceID string, log *logger.Logger) {
	ctx := r.Context()
	status := err.HTTPStatus()

	logFields := logger.Fields{
		"error_code": err.Code(),
		"category":   string(err.Category()),
		"status":     status,
		"action":     "domain_error",
	}
	if traceID != "" {
		logFields["trace_id"] = traceID
		w.Header().Set("X-Trace-ID", traceID)
	}

	if log.ShouldLog(logger.DEBUG) {
		log.WithFields(ctx, logFields).Debugf("domain error: %s", err.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(err.Category()),
		err.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, status, err.Code(), err.Message())
}

func getTraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, ok := ctx.Value(constants.TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
