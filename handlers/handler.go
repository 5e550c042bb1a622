package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/rogainizer/metrics"
	"github.com/padraicbc/rogainizer/service"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options are the collaborators a Handler is built from. Events and Teams are
// set for the courses schema, Results for the results schema.
type Options struct {
	Events  *service.EventManager
	Teams   *service.TeamManager
	Results *service.ResultResolver
	Users   *service.UserDirectory
	DB      Pinger
	Log     *zap.Logger
	Metrics *metrics.Metrics

	// FetchTimeout bounds one JSON proxy request; zero means 15s.
	FetchTimeout time.Duration
	// FetchClient defaults to a plain http.Client.
	FetchClient *http.Client
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	events  *service.EventManager
	teams   *service.TeamManager
	results *service.ResultResolver
	users   *service.UserDirectory
	db      Pinger
	log     *zap.Logger
	metrics *metrics.Metrics

	fetchTimeout time.Duration
	fetch        *http.Client
}

// New creates a Handler from opts.
func New(opts Options) *Handler {
	h := &Handler{
		events:       opts.Events,
		teams:        opts.Teams,
		results:      opts.Results,
		users:        opts.Users,
		db:           opts.DB,
		log:          opts.Log,
		metrics:      opts.Metrics,
		fetchTimeout: opts.FetchTimeout,
		fetch:        opts.FetchClient,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.fetchTimeout <= 0 {
		h.fetchTimeout = defaultFetchTimeout
	}
	if h.fetch == nil {
		h.fetch = &http.Client{}
	}
	return h
}
