package client

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingFlag    = errors.New("missing required flag")
)
