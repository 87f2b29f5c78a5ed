package flow

import "context"

// FlowID is a unique identifier for a flow.
type FlowID string

// StepID is a unique identifier for a step within a flow.
type StepID string

// Role gates which commands and flows an actor may reach.
type Role string

const (
	RoleRegular  Role = "regular"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

// Actor identifies the user behind an incoming interaction. The role is
// resolved by the transport layer on every turn and is not stored in the
// session.
type Actor struct {
	UserID   int64
	ChatID   int64
	Username string
	Role     Role
}

// InputKind distinguishes free-form text from discrete control presses.
type InputKind string

const (
	KindText   InputKind = "text"
	KindAction InputKind = "action"
)

// Discrete control identifiers carried by action interactions.
const (
	ActionConfirm  = "confirm"
	ActionCancel   = "cancel"
	ActionSkip     = "skip"
	ActionMainMenu = "mainmenu"
)

// Interaction is a normalized inbound event from any transport.
type Interaction struct {
	Kind    InputKind
	Payload string
}

// Text builds a free-form text interaction.
func Text(payload string) Interaction {
	return Interaction{Kind: KindText, Payload: payload}
}

// Action builds a discrete control interaction.
func Action(payload string) Interaction {
	return Interaction{Kind: KindAction, Payload: payload}
}

// MenuButton is a button on a persistent reply keyboard.
type MenuButton struct {
	Text string
}

// InlineButton is an inline button carrying an action payload.
type InlineButton struct {
	Text string
	Data string
}

// Response is a rendering instruction: the message body plus the control
// surface to show. The core never renders; the transport layer does.
type Response struct {
	Text       string
	Menu       [][]MenuButton
	Inline     [][]InlineButton
	RemoveMenu bool
}

// Empty reports whether there is nothing to render.
func (r Response) Empty() bool {
	return r.Text == "" && r.Menu == nil && r.Inline == nil && !r.RemoveMenu
}

// SessionStorage handles persistence of sessions.
type SessionStorage interface {
	// Get returns the session for a user, creating an empty idle one if none
	// exists. It fails only when the backing store is unavailable.
	Get(ctx context.Context, userID int64) (*Session, error)

	// Save persists the whole session record.
	Save(ctx context.Context, s *Session) error

	// Clear removes the session record for a user.
	Clear(ctx context.Context, userID int64) error
}
