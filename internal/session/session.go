package session

import (
	"tillfront/internal/model"
)

// Session is the persisted terminal state: the raw cart mapping plus the
// product snapshot it was built against. It is restored wholesale at
// startup and overwritten wholesale after every cart mutation.
type Session struct {
	Cart     map[string]any  `json:"cart"`
	Products []model.Product `json:"products"`
}

// Store persists the session blob. Saves are write-through and
// fire-and-forget: callers log failures and move on, the in-memory cart
// stays authoritative.
type Store interface {
	Save(s Session) error
	Load() (Session, error)
}
