package setup

import (
	"log/slog"

	"github.com/petchan-dev/petchan/internal/announce"
	"github.com/petchan-dev/petchan/internal/cache"
	"github.com/petchan-dev/petchan/internal/config"
	"github.com/petchan-dev/petchan/internal/errlog"
	"github.com/petchan-dev/petchan/internal/handler"
	"github.com/petchan-dev/petchan/internal/objectstore"
	"github.com/petchan-dev/petchan/internal/ratelimit"
	"github.com/petchan-dev/petchan/internal/service"
	"github.com/petchan-dev/petchan/internal/storage/pg"
	"github.com/petchan-dev/petchan/internal/validation"
)

// Dependencies holds all initialized collaborators.
type Dependencies struct {
	Config  *config.Config
	Storage *pg.Storage
	Cache   *cache.PageCache
	Handler *handler.Handler
}

// SetupDependencies wires the whole posting pipeline. The rate
// limiter and the object store are optional: leaving them out of the
// private config degrades gracefully instead of failing startup.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg.Private.Pg)
	if err != nil {
		return nil, err
	}

	var limiterBackend ratelimit.Limiter
	if cfg.Private.RateLimitBackend.Url != "" {
		limiterBackend = ratelimit.NewRestClient(
			cfg.Private.RateLimitBackend.Url,
			cfg.Private.RateLimitBackend.Token,
			cfg.Public.RateLimit.Timeout(),
		)
	} else if cfg.Environment() != "production" {
		slog.Info("using in-process rate limiter", "window", cfg.Public.RateLimit.Window(), "capacity", cfg.Public.RateLimit.Capacity)
		limiterBackend = ratelimit.NewSlidingWindow(cfg.Public.RateLimit.Window(), cfg.Public.RateLimit.Capacity)
	}
	limiter := ratelimit.NewChecker(limiterBackend)

	pageCache := cache.New(cfg.Public.Cache.TTL())
	sink := errlog.NewSink(storage, cfg.Environment())
	validator := validation.New()

	thread := service.NewThread(storage, validator, limiter, pageCache, sink)
	response := service.NewResponse(storage, validator, limiter, pageCache, sink)

	var upload *service.Upload
	if store := objectstore.New(cfg.Private.ObjectStorage); store.Configured() {
		upload = service.NewUpload(store, cfg.Public.Upload, sink)
	} else {
		slog.Warn("object storage not configured, image uploads disabled")
	}

	announcements := announce.New(cfg.Private.Announce.BaseUrl, cfg.Private.Announce.ApiKey)

	h := handler.New(thread, response, upload, storage, announcements, pageCache, sink, storage)

	return &Dependencies{
		Config:  cfg,
		Storage: storage,
		Cache:   pageCache,
		Handler: h,
	}, nil
}
