package service

import (
	"context"
	"errors"

	"github.com/petchan-dev/petchan/internal/anchor"
	"github.com/petchan-dev/petchan/internal/cache"
	"github.com/petchan-dev/petchan/internal/domain"
	"github.com/petchan-dev/petchan/internal/errlog"
	internal_errors "github.com/petchan-dev/petchan/internal/errors"
	"github.com/petchan-dev/petchan/internal/markdown"
	"github.com/petchan-dev/petchan/internal/ratelimit"
	"github.com/petchan-dev/petchan/internal/validation"
)

type ThreadStorage interface {
	CreateThread(ctx context.Context, data domain.ThreadCreationData) (domain.Created, error)
	GetThread(ctx context.Context, id domain.ThreadId) (domain.Thread, []domain.Response, error)
	GetThreads(ctx context.Context, limit, offset int) ([]domain.Thread, error)
	GetThreadsByCategory(ctx context.Context, categoryId domain.CategoryId, limit, offset int) ([]domain.Thread, error)
}

type Thread struct {
	storage   ThreadStorage
	validator *validation.Validator
	limiter   *ratelimit.Checker
	cache     cache.Invalidator
	sink      *errlog.Sink
	renderer  *markdown.TextProcessor
}

func NewThread(storage ThreadStorage, validator *validation.Validator, limiter *ratelimit.Checker, cache cache.Invalidator, sink *errlog.Sink) *Thread {
	return &Thread{
		storage:   storage,
		validator: validator,
		limiter:   limiter,
		cache:     cache,
		sink:      sink,
		renderer:  markdown.New(),
	}
}

// Create runs the full submission state machine for a new thread.
// Failure exits: validation, rate limit, persistence. No partial
// commits: a persistence failure leaves no thread and triggers no
// cache invalidation.
func (s *Thread) Create(ctx context.Context, cmd validation.CreateThread, client domain.Client) SubmitResult {
	if err := s.validator.Thread(&cmd); err != nil {
		var verr *internal_errors.ValidationError
		errors.As(err, &verr)
		s.sink.Log(ctx, domain.ErrorLogEntry{
			Message:      verr.Message,
			Kind:         string(internal_errors.KindValidation),
			FunctionName: "Thread.Create",
			UserAction:   "create_thread",
			Severity:     domain.SeverityWarn,
			ClientIP:     hashIP(client.IP),
			UserAgent:    client.UserAgent,
		})
		return fail(internal_errors.KindValidation, verr.Message)
	}

	res := s.limiter.Check(ctx, ratelimit.Key("thread", client.Identity()))
	if !res.Allowed {
		return fail(internal_errors.KindRateLimit, MsgRateLimited)
	}

	created, err := s.storage.CreateThread(ctx, domain.ThreadCreationData{
		Title:         cmd.Title,
		Content:       cmd.Content,
		CategoryId:    cmd.CategoryId,
		SubCategoryId: cmd.SubCategoryId,
		ImageUrls:     cmd.ImageUrls,
		ClientIP:      client.IP,
	})
	if err != nil {
		if errors.Is(err, internal_errors.ErrTooFrequentPosting) {
			return fail(internal_errors.KindTooFrequent, MsgTooFrequent)
		}
		s.sink.Log(ctx, domain.ErrorLogEntry{
			Message:      err.Error(),
			Kind:         string(internal_errors.KindDatabase),
			FunctionName: "Thread.Create",
			UserAction:   "create_thread",
			Severity:     domain.SeverityError,
			ClientIP:     hashIP(client.IP),
			UserAgent:    client.UserAgent,
			RequestData: redactedSnapshot(map[string]any{
				"title":         truncateRunes(cmd.Title, 50),
				"categoryId":    cmd.CategoryId,
				"subCategoryId": cmd.SubCategoryId,
				"hasImages":     len(cmd.ImageUrls) > 0,
				"contentLength": len([]rune(cmd.Content)),
			}),
		})
		return fail(internal_errors.KindDatabase, MsgThreadFailed)
	}

	// best-effort: the thread exists even if invalidation is skipped
	s.cache.Invalidate("/")
	s.cache.Invalidate("/category/" + cmd.CategoryId)

	return succeed(created)
}

// List returns recent threads ordered by activity, optionally scoped
// to a main category.
func (s *Thread) List(ctx context.Context, categoryId domain.CategoryId, limit, offset int) ([]domain.Thread, error) {
	if categoryId != "" {
		return s.storage.GetThreadsByCategory(ctx, categoryId, limit, offset)
	}
	return s.storage.GetThreads(ctx, limit, offset)
}

// Get returns the thread page with display numbers, anchor labels and
// rendered HTML resolved against the response list.
func (s *Thread) Get(ctx context.Context, id domain.ThreadId) (*domain.ThreadPage, error) {
	thread, responses, err := s.storage.GetThread(ctx, id)
	if err != nil {
		return nil, err
	}

	ix := anchor.NewIndex(responses)

	page := &domain.ThreadPage{Thread: thread, Responses: make([]domain.ResponseView, 0, len(responses))}
	for i, r := range responses {
		html, err := s.renderer.Render(r.Content, ix)
		if err != nil {
			html = ""
		}
		var anchorLabel string
		if r.AnchorTo.Valid {
			anchorLabel = ix.Label(r.AnchorTo.String)
		}
		page.Responses = append(page.Responses, domain.ResponseView{
			Id:        r.Id,
			Number:    i + 1,
			Content:   r.Content,
			Html:      html,
			Anchor:    anchorLabel,
			ImageUrls: r.ImageUrls,
			CreatedAt: r.CreatedAt,
		})
	}
	return page, nil
}
