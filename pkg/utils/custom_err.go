package utils

import "errors"

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrNoJSONFound            = errors.New("no JSON object found in response")
	ErrUnexpectedBehaviorOfAI = errors.New("unexpected behavior from AI provider")
)
