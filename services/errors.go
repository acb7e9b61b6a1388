package services

import (
	"errors"
	"fmt"

	"sweat-battle-system/storage"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrTerminalState   = errors.New("battle is already completed")
	ErrParticipant     = errors.New("user is not a valid participant for this battle")
	ErrDuplicateAction = errors.New("participant already acted this turn")
	ErrConcurrency     = errors.New("battle is being updated concurrently; retry later")
	ErrInvalidInput    = errors.New("invalid input")
)

// translate maps store errors onto the service taxonomy.
func translate(err error, what string, id string) error {
	if errors.Is(err, storage.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, id, ErrNotFound)
	}
	return err
}
