package history

import (
	"time"
)

// Outcome is how a handled request ended
type Outcome string

const (
	OutcomeExecuted       Outcome = "executed"
	OutcomeFailed         Outcome = "failed"
	OutcomeNoCommands     Outcome = "no_commands"
	OutcomeDeviceNotFound Outcome = "device_not_found"
	OutcomeModelError     Outcome = "model_error"
)

// Entry represents one handled operator request
type Entry struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Request    string    `json:"request"`
	Commands   []string  `json:"commands,omitempty"`
	Identifier string    `json:"identifier,omitempty"`
	DeviceIP   string    `json:"device_ip,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	Detail     string    `json:"detail,omitempty"`
}

// NewEntry creates a new history entry stamped with the current time
func NewEntry(request string, commands []string, identifier string, outcome Outcome) Entry {
	return Entry{
		Timestamp:  time.Now(),
		Request:    request,
		Commands:   commands,
		Identifier: identifier,
		Outcome:    outcome,
	}
}
