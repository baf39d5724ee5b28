package response

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"
	stdjson "encoding/json"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = http.StatusOK
	BadRequest          = http.StatusBadRequest
	UnprocessableEntity = http.StatusUnprocessableEntity
	InternalServerError = http.StatusInternalServerError
)

// Success 成功返回, the payload is written as is
func Success(c *gin.Context, data interface{}) {
	c.JSON(Ok, data)
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, dto.ErrorDTO{Detail: detail})
}

// Soft 软错误结果, error results become 400
func Soft(c *gin.Context, result *service.Result) {
	if result.Failed() {
		Fail(c, BadRequest, result.Message)
		return
	}
	Success(c, result)
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	if isInputError(err) {
		Fail(c, UnprocessableEntity, err.Error())
		return
	}

	code, ok := service.ErrorMap[err]
	if !ok {
		for target, status := range service.ErrorMap {
			if errors.Is(err, target) {
				code, ok = status, true
				break
			}
		}
	}
	if !ok || code == InternalServerError {
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		_ = c.Error(err)
		Fail(c, InternalServerError, service.UnExpectedError.Error())
		return
	}
	Fail(c, code, err.Error())
}

// BindError 请求体或参数无法解析
func BindError(c *gin.Context, err error) {
	log.DebugContext(c.Request.Context(), "request rejected", "err", err)
	Fail(c, UnprocessableEntity, err.Error())
}

func isInputError(err error) bool {
	var fe *util.FieldError
	if errors.As(err, &fe) {
		return true
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		return true
	}
	var stdTypeError *stdjson.UnmarshalTypeError
	return errors.As(err, &stdTypeError)
}
