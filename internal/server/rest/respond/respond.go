// Package respond writes JSON responses and turns service errors into HTTP
// statuses. Every error body has the shape {"error": "<message>"}.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/finplanner/internal/common"
	"github.com/dmitrijs2005/finplanner/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	MsgUnauthenticated = "unauthenticated"
	MsgInternal        = "internal server error"
	MsgNotFound        = "not found"
	MsgInvalidBody     = "invalid request body"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// Abort writes an error body with status and stops the handler chain.
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}

// Status maps err to a status code and the message the client sees.
// Unknown errors become 500 with a generic message.
func Status(err error) (int, string) {
	var ve *common.ValidationError
	var dup *common.DuplicateError

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case errors.As(err, &dup):
		return http.StatusConflict, dup.Error()
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, common.ErrInvalidCredentials.Error()
	case errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, MsgUnauthenticated
	case errors.Is(err, common.ErrInvalidResetToken):
		return http.StatusBadRequest, common.ErrInvalidResetToken.Error()
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, MsgNotFound
	default:
		return http.StatusInternalServerError, MsgInternal
	}
}

// Error writes err to the client. Server-side failures are logged with the
// cause; the client only gets the generic message.
func Error(c *gin.Context, logger logging.Logger, err error) {
	status, msg := Status(err)
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
	}
	Abort(c, status, msg)
}

// BindError converts a gin binding failure into a *common.ValidationError.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return common.NewValidationError(fe.Field(), fieldMessage(fe))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return common.NewValidationError(typeErr.Field, fmt.Sprintf("%s has the wrong type", typeErr.Field))
	}
	if errors.Is(err, io.EOF) {
		return common.NewValidationError("", "request body is required")
	}
	return common.NewValidationError("", MsgInvalidBody)
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " is not valid"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.Join(strings.Fields(fe.Param()), ", "))
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	default:
		return name + " is invalid"
	}
}

var registerOnce sync.Once

// UseJSONFieldNames makes gin's validator report fields by their json tag,
// so messages name "currentPassword" rather than "CurrentPassword".
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}
