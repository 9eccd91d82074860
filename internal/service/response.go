package service

import (
	"context"
	"errors"

	"github.com/petchan-dev/petchan/internal/cache"
	"github.com/petchan-dev/petchan/internal/domain"
	"github.com/petchan-dev/petchan/internal/errlog"
	internal_errors "github.com/petchan-dev/petchan/internal/errors"
	"github.com/petchan-dev/petchan/internal/ratelimit"
	"github.com/petchan-dev/petchan/internal/validation"
)

type ResponseStorage interface {
	CreateResponse(ctx context.Context, data domain.ResponseCreationData) (domain.Created, error)
}

type Response struct {
	storage   ResponseStorage
	validator *validation.Validator
	limiter   *ratelimit.Checker
	cache     cache.Invalidator
	sink      *errlog.Sink
}

func NewResponse(storage ResponseStorage, validator *validation.Validator, limiter *ratelimit.Checker, cache cache.Invalidator, sink *errlog.Sink) *Response {
	return &Response{
		storage:   storage,
		validator: validator,
		limiter:   limiter,
		cache:     cache,
		sink:      sink,
	}
}

// Create mirrors the thread state machine, scoped to a single
// thread's cache entry.
func (s *Response) Create(ctx context.Context, cmd validation.CreateResponse, client domain.Client) SubmitResult {
	if err := s.validator.Response(&cmd); err != nil {
		var verr *internal_errors.ValidationError
		errors.As(err, &verr)
		s.sink.Log(ctx, domain.ErrorLogEntry{
			Message:      verr.Message,
			Kind:         string(internal_errors.KindValidation),
			FunctionName: "Response.Create",
			UserAction:   "create_response",
			Severity:     domain.SeverityWarn,
			ClientIP:     hashIP(client.IP),
			UserAgent:    client.UserAgent,
		})
		return fail(internal_errors.KindValidation, verr.Message)
	}

	res := s.limiter.Check(ctx, ratelimit.Key("response", client.Identity()))
	if !res.Allowed {
		return fail(internal_errors.KindRateLimit, MsgRateLimited)
	}

	created, err := s.storage.CreateResponse(ctx, domain.ResponseCreationData{
		ThreadId:  cmd.ThreadId,
		Content:   cmd.Content,
		ImageUrls: cmd.ImageUrls,
		AnchorTo:  cmd.AnchorTo,
		ClientIP:  client.IP,
	})
	if err != nil {
		if errors.Is(err, internal_errors.ErrTooFrequentPosting) {
			return fail(internal_errors.KindTooFrequent, MsgTooFrequent)
		}
		s.sink.Log(ctx, domain.ErrorLogEntry{
			Message:      err.Error(),
			Kind:         string(internal_errors.KindDatabase),
			FunctionName: "Response.Create",
			UserAction:   "create_response",
			Severity:     domain.SeverityError,
			ClientIP:     hashIP(client.IP),
			UserAgent:    client.UserAgent,
			RequestData: redactedSnapshot(map[string]any{
				"threadId":      cmd.ThreadId,
				"hasAnchor":     cmd.AnchorTo != "",
				"hasImages":     len(cmd.ImageUrls) > 0,
				"contentLength": len([]rune(cmd.Content)),
			}),
		})
		return fail(internal_errors.KindDatabase, MsgResponseFailed)
	}

	s.cache.Invalidate("/thread/" + cmd.ThreadId)

	return succeed(created)
}
