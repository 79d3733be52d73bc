package bizerror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"shopfloor/common"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func ErrorHandling() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer handle(c)
		c.Next()
	}
}

func handle(c *gin.Context) {
	if ret := recover(); ret != nil {
		err, ok := ret.(error)
		if !ok {
			err = errors.New(fmt.Sprintf("%s", ret))
		}
		HandleError(c, err)
	} else {
		if err := c.Errors.Last(); err != nil {
			HandleError(c, err)
		}
	}
}

func HandleError(c *gin.Context, err error) {
	logrus.Error(err)

	genericErr := err
	var ginErr *gin.Error
	if errors.As(err, &ginErr) {
		genericErr = ginErr.Err
	}

	if bizErr, ok := genericErr.(BizError); ok {
		respond := bizErr.Respond()
		c.JSON(respond.Status, &common.ErrorBody{Code: respond.Code, Message: respond.Message, Data: respond.Data})
		c.Abort()
		return
	}

	// bad request:  io.EOF (no body).
	if errors.Is(genericErr, io.EOF) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.body_not_found", Message: "body not found"})
		c.Abort()
		return
	}
	// bad request: json syntax Error
	if syntaxErr, ok := genericErr.(*json.SyntaxError); ok {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.invalid_body_format", Message: "invalid body format", Data: syntaxErr.Error()})
		c.Abort()
		return
	}
	// validation failed
	if validationErr, ok := genericErr.(validator.ValidationErrors); ok {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "bad_request.validation_failed", Message: "validation failed", Data: validationErr.Error()})
		c.Abort()
		return
	}

	if errors.Is(genericErr, ErrUnknownActivity) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "entry.unknown_activity", Message: "unknown activity code"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrInvalidTimeRange) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "entry.invalid_time_range", Message: "end time must be after start time"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrDurationMismatch) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "entry.duration_mismatch", Message: "duration does not match time range"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrMachineExisted) {
		c.JSON(http.StatusBadRequest, &common.ErrorBody{Code: "refdata.machine_existed", Message: "machine existed"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, ErrRecomputeConflict) {
		c.JSON(http.StatusConflict, &common.ErrorBody{Code: "summary.recompute_conflict", Message: "concurrent recompute on the same key"})
		c.Abort()
		return
	}
	if errors.Is(genericErr, gorm.ErrRecordNotFound) || errors.Is(genericErr, ErrNotFound) {
		c.JSON(http.StatusNotFound, &common.ErrorBody{Code: "common.record_not_found", Message: "record not found"})
		c.Abort()
		return
	}

	c.JSON(500, &common.ErrorBody{Code: "common.internal_server_error", Message: err.Error()})
	c.Abort()
}
