package domain

import "errors"

// Task API errors
var (
	ErrResponseNotOK  = errors.New("network response not ok")
	ErrTaskIDRequired = errors.New("taskapi: task id is required")
	ErrDecodePayload  = errors.New("taskapi: failed to decode status payload")
)

// Registry errors
var (
	ErrTaskNotRegistered = errors.New("registry: task not registered")
)
