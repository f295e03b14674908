package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/thedyrex/pickems/internal/domain/bracket"
	"github.com/thedyrex/pickems/internal/domain/pick"
	"github.com/thedyrex/pickems/internal/platform/logging"
	"github.com/thedyrex/pickems/internal/usecase"
)

const (
	apiVersion      = "2.0"
	errorDomain     = "pickems"
	internalMessage = "internal server error"
)

// envelope is the Google JSON style body every route answers with.
type envelope struct {
	APIVersion string    `json:"apiVersion"`
	Data       any       `json:"data,omitempty"`
	Error      *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Status  string         `json:"status"`
	Errors  []apiErrorItem `json:"errors,omitempty"`
}

type apiErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type errorClass struct {
	HTTPStatus int
	Reason     string
	Status     string
}

type errorRule struct {
	targets []error
	class   errorClass
}

// Domain reasons come before the generic sentinels they are wrapped with.
var errorRules = []errorRule{
	{[]error{pick.ErrPickLocked}, errorClass{http.StatusConflict, "pickLocked", "ALREADY_EXISTS"}},
	{[]error{pick.ErrMatchGraded}, errorClass{http.StatusConflict, "matchGraded", "FAILED_PRECONDITION"}},
	{[]error{pick.ErrDayClosed}, errorClass{http.StatusConflict, "dayClosed", "FAILED_PRECONDITION"}},
	{
		[]error{pick.ErrParticipantsUnresolved, bracket.ErrParticipantsUnresolved},
		errorClass{http.StatusBadRequest, "participantsUnresolved", "FAILED_PRECONDITION"},
	},
	{
		[]error{pick.ErrTeamNotInMatch, pick.ErrIncompleteScore, pick.ErrScoreOutOfRange, pick.ErrTiedScore, pick.ErrWinningScoreMismatch, pick.ErrPickScoreDisagree},
		errorClass{http.StatusBadRequest, "invalidPick", "INVALID_ARGUMENT"},
	},
	{
		[]error{bracket.ErrTiedResult, bracket.ErrScoreOutOfRange, bracket.ErrWinnerScoreMismatch, bracket.ErrWinnerNotParticipant},
		errorClass{http.StatusBadRequest, "invalidResult", "INVALID_ARGUMENT"},
	},
	{[]error{usecase.ErrInvalidInput}, errorClass{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{[]error{usecase.ErrNotFound}, errorClass{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{[]error{usecase.ErrUnauthorized}, errorClass{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{[]error{usecase.ErrForbidden}, errorClass{http.StatusForbidden, "forbidden", "PERMISSION_DENIED"}},
	{[]error{usecase.ErrConflict}, errorClass{http.StatusConflict, "conflict", "ABORTED"}},
	{[]error{usecase.ErrDependencyUnavailable}, errorClass{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalClass = errorClass{http.StatusInternalServerError, "internalError", "INTERNAL"}

func classify(err error) errorClass {
	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.class
			}
		}
	}
	return internalClass
}

var responseBuffers bytebufferpool.Pool

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload envelope) {
	buf := responseBuffers.Get()
	defer responseBuffers.Put(buf)

	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		logging.Default().ErrorContext(ctx, "encode response failed", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"apiVersion":"2.0","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}`))
		return
	}

	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError maps err to its class. 5xx bodies never carry err's text.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classify(err)
	message := err.Error()
	if class.HTTPStatus == http.StatusInternalServerError {
		logging.Default().ErrorContext(ctx, "request failed", "request_id", requestIDFromContext(ctx), "error", err)
		message = internalMessage
	}
	writeErrorClass(ctx, w, class, message)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorClass(ctx, w, internalClass, internalMessage)
}

func writeErrorClass(ctx context.Context, w http.ResponseWriter, class errorClass, message string) {
	writeJSON(ctx, w, class.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &apiError{
			Code:    class.HTTPStatus,
			Message: message,
			Status:  class.Status,
			Errors:  []apiErrorItem{{Domain: errorDomain, Reason: class.Reason, Message: message}},
		},
	})
}
