// Package handlers translates HTTP requests into commands and queries.
package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"causalmap/application/commands/bus"
	"causalmap/application/queries"
	querybus "causalmap/application/queries/bus"
	"causalmap/pkg/common"
	pkgerrors "causalmap/pkg/errors"
)

// base carries what every resource handler needs.
type base struct {
	commandBus   *bus.CommandBus
	queryBus     *querybus.QueryBus
	errors       *pkgerrors.ErrorHandler
	logger       *zap.Logger
	maxBodyBytes int64
}

// Deps groups the collaborators shared by the resource handlers.
type Deps struct {
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Errors       *pkgerrors.ErrorHandler
	Logger       *zap.Logger
	MaxBodyBytes int64
}

func newBase(d Deps) base {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Errors == nil {
		d.Errors = pkgerrors.NewErrorHandler(d.Logger, false)
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = common.DefaultMaxBodyBytes
	}
	return base{
		commandBus:   d.CommandBus,
		queryBus:     d.QueryBus,
		errors:       d.Errors,
		logger:       d.Logger,
		maxBodyBytes: d.MaxBodyBytes,
	}
}

func (b base) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	return common.ParseJSONBody(w, r, v, b.maxBodyBytes)
}

// send dispatches cmd and renders any failure. It reports whether the
// command succeeded.
func (b base) send(w http.ResponseWriter, r *http.Request, cmd bus.Command) bool {
	if err := b.commandBus.Send(r.Context(), cmd); err != nil {
		b.logger.Debug("Command rejected",
			zap.String("command", bus.CommandName(cmd)),
			zap.Error(err),
		)
		b.errors.Handle(w, r, err)
		return false
	}
	return true
}

func (b base) graph(ctx context.Context, graphID string) (*queries.GraphView, error) {
	return querybus.Ask[*queries.GraphView](ctx, b.queryBus, queries.GetGraphQuery{GraphID: graphID})
}

func (b base) respond(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	common.RespondWithMeta(w, status, data, common.NewMeta(r))
}

// idOrNew returns id, or a fresh UUID when the client did not pick one.
func idOrNew(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
