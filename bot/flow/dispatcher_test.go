package flow

import (
	"context"
	"fmt"
	"testing"
)

func newTestDispatcher(t *testing.T, commands []Command) (*Dispatcher, *Engine) {
	t.Helper()
	engine, _ := newTestEngine(t, twoStepFlow(nil))
	home := func(actor Actor) Response {
		return Response{Text: "home:" + string(actor.Role)}
	}
	return NewDispatcher(engine, commands, home, testLogger()), engine
}

func TestDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()

	t.Run("main menu cancels the active flow and renders home", func(t *testing.T) {
		d, engine := newTestDispatcher(t, nil)
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")
		resp, handled, err := d.Dispatch(ctx, actor, Action(ActionMainMenu))
		if err != nil || !handled {
			t.Fatalf("dispatch: handled=%v err=%v", handled, err)
		}
		if resp.Text != "home:merchant" {
			t.Errorf("expected home screen, got %q", resp.Text)
		}

		if _, handled, _ := engine.Advance(ctx, actor, Text("x")); handled {
			t.Error("flow must be cancelled by the main menu override")
		}
	})

	t.Run("mid-flow input goes to the flow, not the command table", func(t *testing.T) {
		trap := Command{
			Name:  "trap",
			Match: MatchText("Alice"),
			Handle: func(ctx context.Context, actor Actor) (Response, error) {
				t.Error("command table must not see mid-flow input")
				return Response{}, nil
			},
		}
		d, engine := newTestDispatcher(t, []Command{trap})
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")
		resp, handled, err := d.Dispatch(ctx, actor, Text("Alice"))
		if err != nil || !handled {
			t.Fatalf("dispatch: handled=%v err=%v", handled, err)
		}
		if resp.Text != "enter amount" {
			t.Errorf("expected flow advance, got %q", resp.Text)
		}
	})

	t.Run("commands are gated by role", func(t *testing.T) {
		cmd := Command{
			Name:  "admin-only",
			Roles: []Role{RoleAdmin},
			Match: MatchText("secret"),
			Handle: func(ctx context.Context, actor Actor) (Response, error) {
				return Response{Text: "granted"}, nil
			},
		}
		d, _ := newTestDispatcher(t, []Command{cmd})

		_, handled, err := d.Dispatch(ctx, testActor(RoleMerchant), Text("secret"))
		if err != nil {
			t.Fatalf("dispatch: %v", err)
		}
		if handled {
			t.Error("merchant must not reach an admin command")
		}

		resp, handled, err := d.Dispatch(ctx, testActor(RoleAdmin), Text("secret"))
		if err != nil || !handled {
			t.Fatalf("dispatch: handled=%v err=%v", handled, err)
		}
		if resp.Text != "granted" {
			t.Errorf("expected command response, got %q", resp.Text)
		}
	})

	t.Run("unmatched idle input is unhandled", func(t *testing.T) {
		d, _ := newTestDispatcher(t, nil)

		_, handled, err := d.Dispatch(ctx, testActor(RoleMerchant), Text("noise"))
		if err != nil {
			t.Fatalf("dispatch: %v", err)
		}
		if handled {
			t.Error("unmatched input must be reported unhandled")
		}
	})

	t.Run("store failure turns into a user notice", func(t *testing.T) {
		cmd := Command{
			Name:  "broken",
			Match: MatchText("broken"),
			Handle: func(ctx context.Context, actor Actor) (Response, error) {
				return Response{}, fmt.Errorf("%w: connection refused", ErrStoreUnavailable)
			},
		}
		d, _ := newTestDispatcher(t, []Command{cmd})

		resp, handled, err := d.Dispatch(ctx, testActor(RoleMerchant), Text("broken"))
		if err != nil || !handled {
			t.Fatalf("dispatch: handled=%v err=%v", handled, err)
		}
		if resp.Text == "" {
			t.Error("store failure must produce a notice")
		}
	})

	t.Run("busy flow turns into a notice on re-entry", func(t *testing.T) {
		var d *Dispatcher
		var engine *Engine
		start := Command{
			Name:  "start",
			Match: MatchText("go"),
			Handle: func(ctx context.Context, actor Actor) (Response, error) {
				return engine.Start(ctx, actor, "test_flow")
			},
		}
		d, engine = newTestDispatcher(t, []Command{start})
		actor := testActor(RoleMerchant)

		engine.Start(ctx, actor, "test_flow")

		// Mid-flow the label is consumed by the flow as text, so drive the
		// handler directly to model a concurrent start attempt.
		_, err := start.Handle(ctx, actor)
		resp, handled, dispErr := d.failure(err)
		if dispErr != nil || !handled {
			t.Fatalf("failure mapping: handled=%v err=%v", handled, dispErr)
		}
		if resp.Text != d.busyText {
			t.Errorf("expected busy notice, got %q", resp.Text)
		}
	})
}
