package repl

import (
	"errors"
	"fmt"
)

// ErrEmptyIntent is reported when the model reply yields no usable commands
var ErrEmptyIntent = errors.New("No valid commands provided. Skipping execution.")

// DeviceNotFoundError is reported when the identifier matches no inventory record
type DeviceNotFoundError struct {
	Identifier string
}

func (e *DeviceNotFoundError) Error() string {
	id := e.Identifier
	if id == "" {
		id = "(none)"
	}
	return fmt.Sprintf("Device %s does not exist", id)
}
