package flow

import "context"

// PromptFunc renders the prompt to show when a step is entered. It may read
// previously collected fields from the session.
type PromptFunc func(s *Session) Response

// ValidateFunc checks raw text input for a step and returns the value to
// commit. Validators are pure; a failure is reported as a Rejection.
type ValidateFunc func(actor Actor, raw string) (string, error)

// AutoFunc lets a step commit its value without user input. Returning ok
// false means the step must prompt normally. An error aborts the turn with
// the step unchanged.
type AutoFunc func(ctx context.Context, actor Actor, s *Session) (value string, ok bool, err error)

// CompleteFunc runs once the flow's last step is committed. It performs the
// flow's side effects and returns the user-facing outcome notice. The engine
// clears the session after it returns, whatever the outcome.
type CompleteFunc func(ctx context.Context, actor Actor, s *Session) Response

// Step is the static specification of one step of a flow.
type Step struct {
	ID    StepID
	Field string

	// Prompt is rendered on entering the step and again on rejection.
	Prompt PromptFunc

	// Validate handles free-form text input. Nil means the step accepts no
	// text; text arriving at such a step is rejected with a re-prompt.
	Validate ValidateFunc

	// Options maps discrete action payloads to the value committed when the
	// corresponding control is pressed (preset choices, the skip sentinel).
	Options map[string]string

	// Confirm marks the terminal confirmation step: ActionConfirm completes
	// the flow, ActionCancel aborts it, and ordinary text cannot reach the
	// completion action.
	Confirm bool

	// Auto, when set, is consulted on entering the step.
	Auto AutoFunc
}

// Definition is the static, immutable specification of a flow: an ordered
// step list, the roles allowed to start it, and its completion action.
type Definition struct {
	ID         FlowID
	Roles      []Role
	Steps      []Step
	OnComplete CompleteFunc

	// OnCancel, when set, renders the cancellation acknowledgment. The
	// engine falls back to a bare acknowledgment otherwise.
	OnCancel func(actor Actor) Response
}

// allowed reports whether the role may start this flow. An empty Roles list
// means any role, same as the command table.
func (d *Definition) allowed(role Role) bool {
	if len(d.Roles) == 0 {
		return true
	}
	for _, r := range d.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// stepIndex returns the position of a step id in the ordered step list.
func (d *Definition) stepIndex(id StepID) int {
	for i := range d.Steps {
		if d.Steps[i].ID == id {
			return i
		}
	}
	return -1
}
