package entity

// Domain-event payloads carried by the in-process bus. Handlers in other
// modules consume these asynchronously; the publishing command never waits
// for them.

// UserCreated fires after a new user is persisted. Consumed by wallet
// provisioning.
type UserCreated struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// UserAttendedEvent fires after a successful check-in. Consumed by the
// invite-unlock accounting handler.
type UserAttendedEvent struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}
