package flow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testActor(role Role) Actor {
	return Actor{UserID: 7, ChatID: 7, Username: "tester", Role: role}
}

// twoStepFlow collects name and amount, then a confirmation step.
func twoStepFlow(completed *map[string]string) *Definition {
	return &Definition{
		ID:    "test_flow",
		Roles: []Role{RoleMerchant},
		Steps: []Step{
			{
				ID:       "name",
				Field:    "name",
				Prompt:   func(*Session) Response { return Response{Text: "enter name"} },
				Validate: NonEmpty("name required"),
			},
			{
				ID:       "amount",
				Field:    "amount",
				Prompt:   func(*Session) Response { return Response{Text: "enter amount"} },
				Validate: PositiveAmount("bad amount"),
			},
			{
				ID:      "confirm",
				Confirm: true,
				Prompt:  func(*Session) Response { return Response{Text: "confirm?"} },
			},
		},
		OnComplete: func(ctx context.Context, actor Actor, s *Session) Response {
			if completed != nil {
				snapshot := make(map[string]string, len(s.Fields))
				for k, v := range s.Fields {
					snapshot[k] = v
				}
				*completed = snapshot
			}
			return Response{Text: "done"}
		},
	}
}

func newTestEngine(t *testing.T, d *Definition) (*Engine, *MemorySessionStorage) {
	t.Helper()
	storage := NewMemorySessionStorage()
	engine := NewEngine(storage, testLogger())
	if d != nil {
		engine.Register(d)
	}
	return engine, storage
}

func TestEngine_Start(t *testing.T) {
	ctx := context.Background()

	t.Run("prompts the first step", func(t *testing.T) {
		engine, storage := newTestEngine(t, twoStepFlow(nil))

		resp, err := engine.Start(ctx, testActor(RoleMerchant), "test_flow")
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if resp.Text != "enter name" {
			t.Errorf("expected first prompt, got %q", resp.Text)
		}

		s, _ := storage.Get(ctx, 7)
		if s.ActiveFlow != "test_flow" || s.Step != "name" {
			t.Errorf("session not positioned on first step: %+v", s)
		}
	})

	t.Run("rejects unknown flow", func(t *testing.T) {
		engine, _ := newTestEngine(t, nil)

		_, err := engine.Start(ctx, testActor(RoleMerchant), "missing")
		if !errors.Is(err, ErrUnknownFlow) {
			t.Errorf("expected ErrUnknownFlow, got %v", err)
		}
	})

	t.Run("rejects role mismatch", func(t *testing.T) {
		engine, _ := newTestEngine(t, twoStepFlow(nil))

		_, err := engine.Start(ctx, testActor(RoleRegular), "test_flow")
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("empty role list admits any role", func(t *testing.T) {
		open := &Definition{
			ID: "open_flow",
			Steps: []Step{
				{ID: "name", Field: "name", Prompt: func(*Session) Response { return Response{Text: "enter name"} }, Validate: NonEmpty("empty")},
			},
		}
		engine, _ := newTestEngine(t, open)

		resp, err := engine.Start(ctx, testActor(RoleRegular), "open_flow")
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if resp.Text != "enter name" {
			t.Errorf("expected first prompt, got %q", resp.Text)
		}
	})

	t.Run("rejects second start while a flow is active", func(t *testing.T) {
		engine, _ := newTestEngine(t, twoStepFlow(nil))
		actor := testActor(RoleMerchant)

		if _, err := engine.Start(ctx, actor, "test_flow"); err != nil {
			t.Fatalf("first start: %v", err)
		}
		_, err := engine.Start(ctx, actor, "test_flow")
		if !errors.Is(err, ErrFlowAlreadyActive) {
			t.Errorf("expected ErrFlowAlreadyActive, got %v", err)
		}
	})
}

func TestEngine_Advance(t *testing.T) {
	ctx := context.Background()

	t.Run("idle session leaves input unhandled", func(t *testing.T) {
		engine, _ := newTestEngine(t, twoStepFlow(nil))

		_, handled, err := engine.Advance(ctx, testActor(RoleMerchant), Text("hello"))
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if handled {
			t.Error("idle session must not consume input")
		}
	})

	t.Run("valid input commits and moves to the next step", func(t *testing.T) {
		engine, storage := newTestEngine(t, twoStepFlow(nil))
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")
		resp, handled, err := engine.Advance(ctx, actor, Text("Alice"))
		if err != nil || !handled {
			t.Fatalf("advance: handled=%v err=%v", handled, err)
		}
		if resp.Text != "enter amount" {
			t.Errorf("expected next prompt, got %q", resp.Text)
		}

		s, _ := storage.Get(ctx, 7)
		if s.Field("name") != "Alice" {
			t.Errorf("field not committed: %+v", s.Fields)
		}
	})

	t.Run("invalid input re-prompts with the reason and keeps the step", func(t *testing.T) {
		engine, storage := newTestEngine(t, twoStepFlow(nil))
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")
		resp, handled, err := engine.Advance(ctx, actor, Text("   "))
		if err != nil || !handled {
			t.Fatalf("advance: handled=%v err=%v", handled, err)
		}
		if !strings.HasPrefix(resp.Text, "name required") || !strings.Contains(resp.Text, "enter name") {
			t.Errorf("expected reason plus prompt, got %q", resp.Text)
		}

		s, _ := storage.Get(ctx, 7)
		if s.Step != "name" {
			t.Errorf("rejection must not move the step, got %q", s.Step)
		}
		if len(s.Fields) != 0 {
			t.Errorf("rejection must not commit fields: %+v", s.Fields)
		}
	})

	t.Run("confirmation step ignores text and completes on confirm action", func(t *testing.T) {
		var completed map[string]string
		engine, storage := newTestEngine(t, twoStepFlow(&completed))
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")
		engine.Advance(ctx, actor, Text("Alice"))
		engine.Advance(ctx, actor, Text("10,50"))

		// Text on the confirmation step is a rejection, not a confirmation.
		resp, _, err := engine.Advance(ctx, actor, Text("yes"))
		if err != nil {
			t.Fatalf("advance: %v", err)
		}
		if completed != nil {
			t.Fatal("text must not complete a confirmation step")
		}
		if !strings.Contains(resp.Text, "confirm?") {
			t.Errorf("expected confirm reprompt, got %q", resp.Text)
		}

		resp, _, err = engine.Advance(ctx, actor, Action(ActionConfirm))
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if resp.Text != "done" {
			t.Errorf("expected completion response, got %q", resp.Text)
		}
		if completed["name"] != "Alice" || completed["amount"] != "10.50" {
			t.Errorf("completion saw wrong fields: %+v", completed)
		}

		s, _ := storage.Get(ctx, 7)
		if !s.Idle() {
			t.Errorf("session must be idle after completion: %+v", s)
		}
	})

	t.Run("cancel action aborts without completing", func(t *testing.T) {
		var completed map[string]string
		engine, storage := newTestEngine(t, twoStepFlow(&completed))
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")
		engine.Advance(ctx, actor, Text("Alice"))

		resp, _, err := engine.Advance(ctx, actor, Action(ActionCancel))
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if completed != nil {
			t.Error("cancel must not run the completion action")
		}
		if resp.Text == "" {
			t.Error("cancel must produce a notice")
		}

		s, _ := storage.Get(ctx, 7)
		if !s.Idle() || len(s.Fields) != 0 {
			t.Errorf("session must be cleared after cancel: %+v", s)
		}
	})

	t.Run("option action commits the mapped value", func(t *testing.T) {
		var completed map[string]string
		d := &Definition{
			ID: "opts",
			Steps: []Step{
				{
					ID:       "choice",
					Field:    "choice",
					Prompt:   func(*Session) Response { return Response{Text: "pick"} },
					Validate: NonEmpty("required"),
					Options:  map[string]string{"opt_a": "Value A"},
				},
			},
			OnComplete: func(ctx context.Context, actor Actor, s *Session) Response {
				completed = map[string]string{"choice": s.Field("choice")}
				return Response{Text: "done"}
			},
		}
		engine, _ := newTestEngine(t, d)
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "opts")
		if _, _, err := engine.Advance(ctx, actor, Action("opt_a")); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if completed["choice"] != "Value A" {
			t.Errorf("expected mapped option value, got %+v", completed)
		}
	})

	t.Run("unknown action on a plain step re-prompts", func(t *testing.T) {
		engine, _ := newTestEngine(t, twoStepFlow(nil))
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")
		resp, handled, err := engine.Advance(ctx, actor, Action("bogus"))
		if err != nil || !handled {
			t.Fatalf("advance: handled=%v err=%v", handled, err)
		}
		if !strings.Contains(resp.Text, "enter name") {
			t.Errorf("expected reprompt, got %q", resp.Text)
		}
	})
}

func TestEngine_AutoSteps(t *testing.T) {
	ctx := context.Background()

	t.Run("resolved auto step skips its prompt", func(t *testing.T) {
		var completed map[string]string
		d := &Definition{
			ID: "auto",
			Steps: []Step{
				{
					ID:    "generated",
					Field: "generated",
					Auto: func(ctx context.Context, actor Actor, s *Session) (string, bool, error) {
						return "tag_42", true, nil
					},
					Prompt:   func(*Session) Response { return Response{Text: "enter manually"} },
					Validate: NonEmpty("required"),
				},
				{
					ID:       "note",
					Field:    "note",
					Prompt:   func(*Session) Response { return Response{Text: "enter note"} },
					Validate: NonEmpty("required"),
				},
			},
			OnComplete: func(ctx context.Context, actor Actor, s *Session) Response {
				completed = map[string]string{"generated": s.Field("generated")}
				return Response{Text: "done"}
			},
		}
		engine, _ := newTestEngine(t, d)
		actor := testActor(RoleMerchant)

		resp, err := engine.Start(ctx, actor, "auto")
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if resp.Text != "enter note" {
			t.Errorf("auto step must be skipped, got prompt %q", resp.Text)
		}

		engine.Advance(ctx, actor, Text("hello"))
		if completed["generated"] != "tag_42" {
			t.Errorf("auto value not committed: %+v", completed)
		}
	})

	t.Run("unresolved auto step falls back to its prompt", func(t *testing.T) {
		d := &Definition{
			ID: "auto",
			Steps: []Step{
				{
					ID:    "generated",
					Field: "generated",
					Auto: func(ctx context.Context, actor Actor, s *Session) (string, bool, error) {
						return "", false, nil
					},
					Prompt:   func(*Session) Response { return Response{Text: "enter manually"} },
					Validate: NonEmpty("required"),
				},
			},
			OnComplete: func(ctx context.Context, actor Actor, s *Session) Response {
				return Response{Text: "done"}
			},
		}
		engine, _ := newTestEngine(t, d)

		resp, err := engine.Start(ctx, testActor(RoleMerchant), "auto")
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if resp.Text != "enter manually" {
			t.Errorf("expected manual prompt, got %q", resp.Text)
		}
	})
}

func TestEngine_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("idle session reports not handled", func(t *testing.T) {
		engine, _ := newTestEngine(t, twoStepFlow(nil))

		_, handled, err := engine.Cancel(ctx, testActor(RoleMerchant))
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if handled {
			t.Error("cancel on idle session must report not handled")
		}
	})

	t.Run("active flow is cleared", func(t *testing.T) {
		engine, storage := newTestEngine(t, twoStepFlow(nil))
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")
		_, handled, err := engine.Cancel(ctx, actor)
		if err != nil || !handled {
			t.Fatalf("cancel: handled=%v err=%v", handled, err)
		}

		s, _ := storage.Get(ctx, 7)
		if !s.Idle() {
			t.Errorf("session must be idle after cancel: %+v", s)
		}
	})
}
