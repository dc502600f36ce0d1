package service

import "errors"

var ErrOrderNotFound = errors.New("order not found")

// InvalidInputError marks a client mistake, mapped to 4xx by handlers.
type InvalidInputError struct {
	msg string
}

func (e *InvalidInputError) Error() string {
	return e.msg
}

func invalidInput(msg string) error {
	return &InvalidInputError{msg: msg}
}
