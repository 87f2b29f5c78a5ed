package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"MerchantBot/internal/lib/sl"
)

// Engine applies incoming interactions to sessions according to the
// registered flow definitions.
type Engine struct {
	flows      map[FlowID]*Definition
	storage    SessionStorage
	log        *slog.Logger
	cancelText string
}

// NewEngine creates an engine over the given session storage.
func NewEngine(storage SessionStorage, log *slog.Logger) *Engine {
	return &Engine{
		flows:      make(map[FlowID]*Definition),
		storage:    storage,
		log:        log.With(sl.Module("flow.engine")),
		cancelText: "❌ Действие отменено.",
	}
}

// Register adds a flow definition to the engine. Definitions are read-only
// after startup.
func (e *Engine) Register(d *Definition) {
	e.flows[d.ID] = d
	e.log.Info("registered flow", slog.String("flow_id", string(d.ID)))
}

// Start begins a flow for an actor. It fails with ErrFlowAlreadyActive when a
// flow is in progress and with ErrUnauthorized when the role does not match.
func (e *Engine) Start(ctx context.Context, actor Actor, flowID FlowID) (Response, error) {
	d, ok := e.flows[flowID]
	if !ok {
		return Response{}, fmt.Errorf("%w: %s", ErrUnknownFlow, flowID)
	}
	if !d.allowed(actor.Role) {
		return Response{}, ErrUnauthorized
	}

	s, err := e.storage.Get(ctx, actor.UserID)
	if err != nil {
		return Response{}, e.storeFailure("loading session", err)
	}
	if !s.Idle() {
		return Response{}, ErrFlowAlreadyActive
	}

	s.ChatID = actor.ChatID
	s.ActiveFlow = flowID

	e.log.Info("starting flow",
		slog.Int64("user_id", actor.UserID),
		slog.String("flow_id", string(flowID)),
	)

	return e.enter(ctx, actor, s, d, 0)
}

// Advance applies one interaction to the actor's active flow. The second
// return value reports whether the interaction was consumed; it is false only
// when the session is idle.
func (e *Engine) Advance(ctx context.Context, actor Actor, in Interaction) (Response, bool, error) {
	s, err := e.storage.Get(ctx, actor.UserID)
	if err != nil {
		return Response{}, false, e.storeFailure("loading session", err)
	}
	if s.Idle() {
		return Response{}, false, nil
	}

	d, ok := e.flows[s.ActiveFlow]
	if !ok {
		return Response{}, true, fmt.Errorf("%w: %s", ErrUnknownFlow, s.ActiveFlow)
	}
	idx := d.stepIndex(s.Step)
	if idx < 0 {
		return Response{}, true, fmt.Errorf("%w: %s/%s", ErrUnknownStep, s.ActiveFlow, s.Step)
	}
	step := &d.Steps[idx]

	var resp Response
	switch in.Kind {
	case KindAction:
		resp, err = e.applyAction(ctx, actor, s, d, idx, in.Payload)
	default:
		resp, err = e.applyText(ctx, actor, s, d, idx, in.Payload)
	}

	if rej, isRej := AsRejection(err); isRej {
		e.log.Debug("input rejected",
			slog.Int64("user_id", actor.UserID),
			slog.String("step_id", string(step.ID)),
			slog.String("reason", rej.Reason),
		)
		return e.reprompt(s, step, rej.Reason), true, nil
	}
	return resp, true, err
}

// Cancel force-cancels whatever flow is active for the actor. It reports
// false when the session was already idle.
func (e *Engine) Cancel(ctx context.Context, actor Actor) (Response, bool, error) {
	s, err := e.storage.Get(ctx, actor.UserID)
	if err != nil {
		return Response{}, false, e.storeFailure("loading session", err)
	}
	if s.Idle() {
		return Response{}, false, nil
	}
	d := e.flows[s.ActiveFlow]
	resp, err := e.abort(ctx, actor, s, d)
	return resp, true, err
}

// applyAction handles a discrete control press on the current step.
func (e *Engine) applyAction(ctx context.Context, actor Actor, s *Session, d *Definition, idx int, payload string) (Response, error) {
	step := &d.Steps[idx]

	switch {
	case payload == ActionCancel:
		return e.abort(ctx, actor, s, d)

	case step.Confirm && payload == ActionConfirm:
		return e.complete(ctx, actor, s, d)

	default:
		if value, ok := step.Options[payload]; ok {
			if step.Field != "" {
				s.SetField(step.Field, value)
			}
			return e.enter(ctx, actor, s, d, idx+1)
		}
		return Response{}, Reject("")
	}
}

// applyText handles free-form text input on the current step.
func (e *Engine) applyText(ctx context.Context, actor Actor, s *Session, d *Definition, idx int, raw string) (Response, error) {
	step := &d.Steps[idx]

	// Confirmation steps are only reachable via discrete actions.
	if step.Confirm || step.Validate == nil {
		return Response{}, Reject("")
	}

	value, err := step.Validate(actor, raw)
	if err != nil {
		return Response{}, err
	}

	s.SetField(step.Field, value)
	return e.enter(ctx, actor, s, d, idx+1)
}

// enter moves the session to the step at idx, resolving auto steps along the
// way, and returns the prompt of the first step that needs user input. When
// the step list is exhausted the flow completes.
func (e *Engine) enter(ctx context.Context, actor Actor, s *Session, d *Definition, idx int) (Response, error) {
	for idx < len(d.Steps) {
		step := &d.Steps[idx]

		if step.Auto != nil {
			value, ok, err := step.Auto(ctx, actor, s)
			if err != nil {
				return Response{}, fmt.Errorf("auto step %s: %w", step.ID, err)
			}
			if ok {
				if step.Field != "" {
					s.SetField(step.Field, value)
				}
				idx++
				continue
			}
		}

		s.Step = step.ID
		s.UpdatedAt = time.Now()
		if err := e.storage.Save(ctx, s); err != nil {
			return Response{}, e.storeFailure("saving session", err)
		}

		e.log.Debug("entered step",
			slog.Int64("user_id", s.UserID),
			slog.String("flow_id", string(d.ID)),
			slog.String("step_id", string(step.ID)),
		)
		return step.Prompt(s), nil
	}

	return e.complete(ctx, actor, s, d)
}

// complete runs the flow's completion action and clears the session. The
// session is cleared whatever the outcome of the completion action: an
// external failure means the user restarts rather than resumes.
func (e *Engine) complete(ctx context.Context, actor Actor, s *Session, d *Definition) (Response, error) {
	e.log.Info("flow completed",
		slog.Int64("user_id", s.UserID),
		slog.String("flow_id", string(d.ID)),
	)

	resp := d.OnComplete(ctx, actor, s)

	s.Reset()
	if err := e.storage.Clear(ctx, s.UserID); err != nil {
		e.log.Error("clearing session after completion", sl.Err(err))
	}
	return resp, nil
}

// abort cancels the active flow without running its completion action.
func (e *Engine) abort(ctx context.Context, actor Actor, s *Session, d *Definition) (Response, error) {
	e.log.Info("flow cancelled",
		slog.Int64("user_id", s.UserID),
		slog.String("flow_id", string(s.ActiveFlow)),
	)

	s.Reset()
	if err := e.storage.Clear(ctx, s.UserID); err != nil {
		return Response{}, e.storeFailure("clearing session", err)
	}

	if d != nil && d.OnCancel != nil {
		return d.OnCancel(actor), nil
	}
	return Response{Text: e.cancelText}, nil
}

// reprompt re-renders the current step's prompt, optionally prefixed with the
// rejection reason. No state is mutated.
func (e *Engine) reprompt(s *Session, step *Step, reason string) Response {
	resp := step.Prompt(s)
	if reason != "" {
		resp.Text = reason + "\n\n" + resp.Text
	}
	return resp
}

func (e *Engine) storeFailure(op string, err error) error {
	e.log.Error(op, sl.Err(err))
	return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
}
