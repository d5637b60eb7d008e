package errors

import (
	"errors"
)

// ErrorDump flattens an error chain for structured logging.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`
}

// Dump walks the error chain and collects each message for log output.
func Dump(err error) ErrorDump {
	dump := ErrorDump{}
	if err == nil {
		return dump
	}

	dump.TopMessage = err.Error()
	if typed := As(err); typed != nil {
		dump.Code = typed.Code()
	}

	for cursor := err; cursor != nil; cursor = errors.Unwrap(cursor) {
		dump.Chain = append(dump.Chain, cursor.Error())
	}
	return dump
}
