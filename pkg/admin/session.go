// Package admin implements the password-gated content editing conversation:
// a finite-state machine over button presses and free-text replies that
// mutates the section tree live.
package admin

import "sync"

// State is the FSM position of one admin conversation.
type State int

const (
	// StateAuth waits for the admin password.
	StateAuth State = iota
	// StateMenu shows the action menu and routes its presses.
	StateMenu
	// StateBrowse navigates the section tree for editing.
	StateBrowse
	// StateSelectItem picks which field of a section to edit.
	StateSelectItem
	// StateText waits for a text reply: section text, a button spec, or a
	// new password depending on the session's field.
	StateText
	// StateMedia waits for a photo/video or a /clear command.
	StateMedia
	// StateAddSection waits for a new section id.
	StateAddSection
	// StateDeleteSection shows the deletable sections.
	StateDeleteSection
)

func (s State) String() string {
	switch s {
	case StateAuth:
		return "auth"
	case StateMenu:
		return "menu"
	case StateBrowse:
		return "browse"
	case StateSelectItem:
		return "select_item"
	case StateText:
		return "text"
	case StateMedia:
		return "media"
	case StateAddSection:
		return "add_section"
	case StateDeleteSection:
		return "delete_section"
	default:
		return "unknown"
	}
}

// Field marks which sub-field of the section a StateText reply edits.
type Field int

const (
	FieldNone Field = iota
	FieldText
	FieldButtonAdd
	FieldButtonEdit
)

// Session is the transient state of one admin conversation. It lives from
// /admin until exit, /cancel or completion and is never persisted.
//
// mu serializes FSM steps for the conversation: inbound interactions run
// concurrently, but a session is mutated by one step at a time.
type Session struct {
	mu sync.Mutex

	State            State
	SectionID        string
	Field            Field
	ButtonIndex      int
	ChangingPassword bool
}

// Manager owns the sessions, keyed by conversation (chat) id. There is no
// ambient global: all access goes through the manager.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewManager constructs an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Begin replaces any existing session for the chat with a fresh one in
// StateAuth.
func (m *Manager) Begin(chatID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{State: StateAuth}
	m.sessions[chatID] = session
	return session
}

// Get returns the chat's active session, if any.
func (m *Manager) Get(chatID int64) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[chatID]
	return session, ok
}

// Active reports whether the chat has an admin conversation in progress.
func (m *Manager) Active(chatID int64) bool {
	_, ok := m.Get(chatID)
	return ok
}

// End destroys the chat's session.
func (m *Manager) End(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}
