package flow

import (
	"context"
	"errors"
	"log/slog"

	"MerchantBot/internal/lib/sl"
)

// Command is one entry of the idle-session command table: a matcher over the
// interaction payload and a handler gated by actor role.
type Command struct {
	Name   string
	Roles  []Role
	Match  func(in Interaction) bool
	Handle func(ctx context.Context, actor Actor) (Response, error)
}

// MatchText matches any of the given free-form payloads (button labels).
func MatchText(labels ...string) func(in Interaction) bool {
	return func(in Interaction) bool {
		if in.Kind != KindText {
			return false
		}
		for _, l := range labels {
			if in.Payload == l {
				return true
			}
		}
		return false
	}
}

// MatchAction matches a discrete control payload.
func MatchAction(payload string) func(in Interaction) bool {
	return func(in Interaction) bool {
		return in.Kind == KindAction && in.Payload == payload
	}
}

// Dispatcher routes an interaction either to the active flow or to the
// command table. It holds no mutable state beyond the table, which is built
// once at startup and read-only thereafter.
type Dispatcher struct {
	engine   *Engine
	commands []Command
	home     func(actor Actor) Response
	log      *slog.Logger

	unavailableText string
	busyText        string
}

// NewDispatcher creates a dispatcher over the engine and command table. home
// renders the role-appropriate main menu.
func NewDispatcher(engine *Engine, commands []Command, home func(actor Actor) Response, log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		engine:          engine,
		commands:        commands,
		home:            home,
		log:             log.With(sl.Module("flow.dispatcher")),
		unavailableText: "⚠️ Сервис временно недоступен. Попробуйте ещё раз.",
		busyText:        "⚠️ Сначала завершите или отмените текущее действие.",
	}
}

// Dispatch applies one interaction. It reports false when nothing matched, in
// which case the caller is responsible for a fallback response.
func (d *Dispatcher) Dispatch(ctx context.Context, actor Actor, in Interaction) (Response, bool, error) {
	// The main-menu control pre-empts everything: any active flow is
	// cancelled and the role home screen is rendered.
	if in.Kind == KindAction && in.Payload == ActionMainMenu {
		if _, _, err := d.engine.Cancel(ctx, actor); err != nil {
			return d.failure(err)
		}
		return d.home(actor), true, nil
	}

	// Mid-flow input always belongs to the flow, rejections included.
	resp, handled, err := d.engine.Advance(ctx, actor, in)
	if err != nil {
		return d.failure(err)
	}
	if handled {
		return resp, true, nil
	}

	for i := range d.commands {
		cmd := &d.commands[i]
		if !roleAllowed(cmd.Roles, actor.Role) || !cmd.Match(in) {
			continue
		}
		d.log.Debug("command matched",
			slog.Int64("user_id", actor.UserID),
			slog.String("command", cmd.Name),
		)
		resp, err := cmd.Handle(ctx, actor)
		if err != nil {
			return d.failure(err)
		}
		return resp, true, nil
	}

	return Response{}, false, nil
}

// failure maps recoverable errors to user-facing notices; everything else is
// a programming error and propagates to fail the single interaction.
func (d *Dispatcher) failure(err error) (Response, bool, error) {
	switch {
	case errors.Is(err, ErrStoreUnavailable):
		return Response{Text: d.unavailableText}, true, nil
	case errors.Is(err, ErrFlowAlreadyActive):
		return Response{Text: d.busyText}, true, nil
	default:
		return Response{}, true, err
	}
}

func roleAllowed(roles []Role, role Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
