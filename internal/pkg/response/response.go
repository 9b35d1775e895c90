package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

// OK sends a 200 response. Slices are sent as bare JSON arrays.
func OK(c *gin.Context, data interface{}) {
	if data != nil {
		v := reflect.ValueOf(data)
		if v.Kind() == reflect.Slice && v.IsNil() {
			c.JSON(http.StatusOK, []interface{}{})
			return
		}
	}
	c.JSON(http.StatusOK, data)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"ok": 0, "code": status, "message": message})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	abort(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Unauthorized"
	}
	abort(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	abort(c, http.StatusNotFound, "Not found")
}

// NotFoundMsg sends a 404 error with a custom message.
func NotFoundMsg(c *gin.Context, message string) {
	abort(c, http.StatusNotFound, message)
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	abort(c, http.StatusMethodNotAllowed, "Method not allowed")
}

// PayloadTooLarge sends a 413 error response.
func PayloadTooLarge(c *gin.Context, message string) {
	abort(c, http.StatusRequestEntityTooLarge, message)
}

// UnprocessableEntity sends a 422 error response.
func UnprocessableEntity(c *gin.Context, message string) {
	abort(c, http.StatusUnprocessableEntity, message)
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	abort(c, http.StatusTooManyRequests, "Too many requests, slow down")
}

// InternalErrorMsg records err for logging but only exposes message to the client.
func InternalErrorMsg(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	abort(c, http.StatusInternalServerError, message)
}

// BadGateway sends a 502 error response for upstream failures.
func BadGateway(c *gin.Context, message string) {
	abort(c, http.StatusBadGateway, message)
}
