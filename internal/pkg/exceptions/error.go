package exceptions

import (
	"bitecare-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"runtime"
)

// Error kinds. A CustomError unwraps to exactly one of these so callers can
// branch with errors.Is without inspecting messages.
var (
	ErrKindValidation           = errors.New("validation error")
	ErrKindInvalidTransition    = errors.New("invalid transition")
	ErrKindProvisioning         = errors.New("provisioning error")
	ErrKindStoreWrite           = errors.New("store write error")
	ErrKindStoreRead            = errors.New("store read error")
	ErrKindConcurrentUpdate     = errors.New("concurrent update")
	ErrKindNotFound             = errors.New("not found")
	ErrKindSubmissionInProgress = errors.New("submission in progress")
	ErrKindBadRequest           = errors.New("bad request")
	ErrKindInternal             = errors.New("internal error")
)

type CustomError struct {
	StatusCode    int               `json:"status_code"`
	Success       bool              `json:"success"`
	ClientMessage string            `json:"message"`
	Fields        map[string]string `json:"fields,omitempty"`
	DevMessage    string            `json:"-"`
	Kind          error             `json:"-"`
	Location      Location          `json:"-"`
}

type Location struct {
	File         string `json:"file"`
	Line         int    `json:"line"`
	FunctionName string `json:"function_name"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%s (%s:%d %s)", e.DevMessage, e.Location.File, e.Location.Line, e.Location.FunctionName)
}

func (e *CustomError) Unwrap() error {
	return e.Kind
}

func BuildNewCustomError(err error, kind error, statusCode int, clientMessage, devMessage string) *CustomError {
	location := getLocation(3)
	if err != nil {
		devMessage = fmt.Sprintf("%s: %s", devMessage, err.Error())
	}
	return &CustomError{
		StatusCode:    statusCode,
		ClientMessage: clientMessage,
		DevMessage:    devMessage,
		Kind:          kind,
		Location:      location,
	}
}

// As returns the CustomError carried by err, if any.
func As(err error) (*CustomError, bool) {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr, true
	}
	return nil, false
}

func getLocation(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return Location{
			File:         constvars.ResponseUnknown,
			Line:         0,
			FunctionName: constvars.ResponseUnknown,
		}
	}
	function := runtime.FuncForPC(pc).Name()
	return Location{
		File:         file,
		Line:         line,
		FunctionName: function,
	}
}
