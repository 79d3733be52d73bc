package bizerror

import (
	"errors"
	"net/http"
)

var ErrNotFound = errors.New("record not found")
var ErrUnknownActivity = errors.New("unknown activity code")
var ErrInvalidTimeRange = errors.New("invalid time range")
var ErrDurationMismatch = errors.New("duration does not match time range")
var ErrRecomputeConflict = errors.New("concurrent recompute on the same key")
var ErrMachineExisted = errors.New("machine existed")

type BizError interface {
	Respond() *BizErrorDetail
}

type BizErrorDetail struct {
	Status  int
	Code    string
	Message string

	Data  interface{}
	Cause error
}

type ErrBadParam struct {
	Cause error
}

func (e *ErrBadParam) Unwrap() error {
	return e.Cause
}
func (e *ErrBadParam) Error() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "common.bad_param"
}
func (e *ErrBadParam) Respond() *BizErrorDetail {
	message := "common.bad_param"
	if e.Cause != nil {
		message = e.Cause.Error()
	}
	return &BizErrorDetail{Status: http.StatusBadRequest, Code: "common.bad_param", Message: message, Data: nil}
}
