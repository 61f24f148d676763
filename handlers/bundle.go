package handlers

import (
	slotRepo "voicebook/database/repository/slot"
	"voicebook/services/call"
	"voicebook/services/session"
)

// HandlerBundle groups the dependencies the HTTP handlers need. One bundle is
// built in main and shared across route groups.
type HandlerBundle struct {
	Sessions   *session.Registry
	Dispatcher *call.Dispatcher
	SlotRepo   slotRepo.Repository
}
