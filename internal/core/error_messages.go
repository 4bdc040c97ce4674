package core

// error_messages.go maps technical errors to user-facing messages with codes
// for support reference.
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Invalid number: a numeric column holds text or a malformed number
//	VAL002 - Invalid integer: floor_count or population is not a whole number
//	VAL003 - Missing field: a row lacks a required field or it is empty
//	VAL004 - Missing column: the header lacks a required column
//	VAL005 - Malformed row: the CSV structure is broken (quotes, delimiters)
//	VAL006 - Malformed JSON: an analyze request body is not a JSON array of rows
//
// # Classification Errors (CLS001-CLS099)
//
//	CLS001 - Not an integer: a floor count was supplied with a non-integer type
//	CLS002 - Not positive: a floor count is zero or negative
//
// # Aggregation Errors (AGG001-AGG099)
//
//	AGG001 - Empty dataset: no houses to evaluate
//	AGG002 - Zero population: a house cannot be used in the area ratio
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large
//	FILE002 - File not found
//	FILE003 - Empty file
//	FILE004 - No file provided
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Database unavailable
//	SRC002 - Request timed out or was cancelled
//	SRC003 - Server busy: all analysis slots are taken
//
// # Default Error (ERR000)
//
// Sentinel kinds are matched with errors.Is first. A *FormatError is mapped
// by the start of its Reason alone; unknown reasons fall back to VAL005.
// Message patterns are matched anywhere in errors from other packages.
// The first match wins.

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgInvalidNumber = UserMessage{
		Message: "Invalid number format detected",
		Action:  "Use plain decimal numbers such as 1250.5 in heating_value and area_residential",
		Code:    "VAL001",
	}
	msgInvalidInteger = UserMessage{
		Message: "A whole number was expected",
		Action:  "floor_count and population must be integers such as 9",
		Code:    "VAL002",
	}
	msgMissingField = UserMessage{
		Message: "Required field is missing or empty",
		Action:  "Ensure every row has a value for each required column",
		Code:    "VAL003",
	}
	msgMissingColumn = UserMessage{
		Message: "Required column is missing from the header",
		Action:  "Include house_address, floor_count, heating_value, area_residential and population",
		Code:    "VAL004",
	}
	msgMalformedRow = UserMessage{
		Message: "The file is not a valid CSV",
		Action:  "Check quoting and that the delimiter matches the file",
		Code:    "VAL005",
	}
	msgNotInteger = UserMessage{
		Message: "Floor count must be an integer",
		Action:  "Supply the floor count as a whole number",
		Code:    "CLS001",
	}
	msgNotPositive = UserMessage{
		Message: "Floor count must be a positive number",
		Action:  "Supply a floor count of 1 or more",
		Code:    "CLS002",
	}
	msgEmptyInput = UserMessage{
		Message: "The dataset contains no houses",
		Action:  "Add at least one data row below the header",
		Code:    "AGG001",
	}
	msgZeroPopulation = UserMessage{
		Message: "A house has no residents",
		Action:  "Population must be at least 1 to compute area per resident",
		Code:    "AGG002",
	}
	msgFileNotFound = UserMessage{
		Message: "Input file not found",
		Action:  "Check the path or set INPUT_PATH",
		Code:    "FILE002",
	}
	msgBusy = UserMessage{
		Message: "The server is busy analyzing other uploads",
		Action:  "Please try again in a moment",
		Code:    "SRC003",
	}
	msgTimeout = UserMessage{
		Message: "Request timed out or was cancelled",
		Action:  "Please try again",
		Code:    "SRC002",
	}
)

// errorKind pairs a sentinel with its message. Checked in order.
type errorKind struct {
	target error
	msg    UserMessage
}

var errorKinds = []errorKind{
	{ErrNotInteger, msgNotInteger},
	{ErrNotPositive, msgNotPositive},
	{ErrEmptyInput, msgEmptyInput},
	{ErrZeroPopulation, msgZeroPopulation},
	{ErrBusy, msgBusy},
	{fs.ErrNotExist, msgFileNotFound},
	{context.DeadlineExceeded, msgTimeout},
	{context.Canceled, msgTimeout},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// More specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{pattern: "missing required column", msg: msgMissingColumn},
	{pattern: "missing required field", msg: msgMissingField},
	{pattern: "empty value", msg: msgMissingField},
	{pattern: "invalid integer", msg: msgInvalidInteger},
	{pattern: "invalid number", msg: msgInvalidNumber},
	{pattern: "number out of range", msg: msgInvalidNumber},
	{pattern: "invalid csv", msg: msgMalformedRow},
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "The request body is not valid JSON",
			Action:  "Send a JSON array of objects keyed by column name",
			Code:    "VAL006",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds maximum size limit",
			Action:  "Split the file or raise UPLOAD_MAX_FILE_SIZE",
			Code:    "FILE001",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file is empty",
			Action:  "Provide a CSV file with a header row and data rows",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was provided",
			Action:  "Send the CSV as the request body or as the \"file\" form field",
			Code:    "FILE004",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Check DATABASE_URL and that the server is running",
			Code:    "SRC001",
		},
	},
	{
		pattern: "failed to connect",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Check DATABASE_URL and that the server is running",
			Code:    "SRC001",
		},
	},
	{pattern: "timeout", msg: msgTimeout},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Returns the zero UserMessage for a nil error.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}

	// A FormatError message embeds the raw cell value, so only its Reason
	// is matched.
	var ferr *FormatError
	if errors.As(err, &ferr) {
		reason := strings.ToLower(ferr.Reason)
		for _, ep := range errorPatterns {
			if strings.HasPrefix(reason, ep.pattern) {
				return ep.msg
			}
		}
		return msgMalformedRow
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than ERR000.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
