package dto

import (
	"encoding/json"
	"time"
)

type ErrorResponse struct {
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

func NewErr(msg string) ErrorResponse {
	return NewErrAt(msg, time.Now())
}

// NewErrAt keeps the moment the error was raised instead of when it is written.
func NewErrAt(msg string, at time.Time) ErrorResponse {
	return ErrorResponse{
		Message: msg,
		Time:    at.UTC(),
	}
}

func (e ErrorResponse) ToString() string {
	b, err := json.Marshal(e)
	if err != nil {
		return ""
	}

	return string(b)
}
