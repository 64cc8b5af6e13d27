package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInputRejected   = errors.New("input rejected")
	ErrArgumentInvalid = errors.New("argument invalid")
	ErrTransform       = errors.New("transform failed")
	ErrDelivery        = errors.New("delivery failed")
	ErrExternalTool    = errors.New("external tool error")
	ErrConfiguration   = errors.New("configuration error")
	ErrNotFound        = errors.New("not found")
	ErrTimeout         = errors.New("timeout")
)

// Class names the failure taxonomy a job error belongs to.
type Class string

const (
	ClassNone            Class = ""
	ClassInputRejected   Class = "input_rejected"
	ClassArgumentInvalid Class = "argument_invalid"
	ClassTransformFailed Class = "transform_failed"
	ClassDeliveryFailed  Class = "delivery_failed"
)

// maxCauseLength bounds how much of an underlying error (usually tool stderr)
// is echoed back to chat users.
const maxCauseLength = 300

// Failure is a classified error carrying the stage context and a message that
// is safe to show to the requester.
type Failure struct {
	Marker    error
	Stage     string
	Operation string
	Message   string
	Err       error
}

func (f *Failure) Error() string {
	detail := buildDetail(f.Stage, f.Operation, f.Message)
	if f.Err != nil {
		return fmt.Sprintf("%v: %s: %v", f.Marker, detail, f.Err)
	}
	return fmt.Sprintf("%v: %s", f.Marker, detail)
}

func (f *Failure) Unwrap() []error {
	errs := make([]error, 0, 2)
	if f.Marker != nil {
		errs = append(errs, f.Marker)
	}
	if f.Err != nil {
		errs = append(errs, f.Err)
	}
	return errs
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	if marker == nil {
		marker = ErrTransform
	}
	return &Failure{
		Marker:    marker,
		Stage:     strings.TrimSpace(stage),
		Operation: strings.TrimSpace(operation),
		Message:   strings.TrimSpace(message),
		Err:       err,
	}
}

// Reject is shorthand for a failure whose message is the complete reply.
func Reject(marker error, message string) error {
	return Wrap(marker, "", "", message, nil)
}

// Classify maps an error onto the job failure taxonomy. Errors without a
// recognised marker are treated as transform failures.
func Classify(err error) Class {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrInputRejected):
		return ClassInputRejected
	case errors.Is(err, ErrArgumentInvalid):
		return ClassArgumentInvalid
	case errors.Is(err, ErrDelivery):
		return ClassDeliveryFailed
	default:
		return ClassTransformFailed
	}
}

// UserMessage renders err for a chat reply. Rejections return their message
// verbatim; runtime failures append a truncated cause.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var failure *Failure
	if !errors.As(err, &failure) {
		return truncate(err.Error())
	}
	msg := failure.Message
	switch Classify(err) {
	case ClassInputRejected, ClassArgumentInvalid:
		if msg != "" {
			return msg
		}
	}
	if failure.Err == nil {
		if msg == "" {
			return failure.Marker.Error()
		}
		return msg
	}
	cause := truncate(UserMessage(failure.Err))
	if msg == "" {
		return cause
	}
	return msg + ": " + cause
}

func truncate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) <= maxCauseLength {
		return value
	}
	return value[:maxCauseLength] + "..."
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
