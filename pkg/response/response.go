package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// requestIDKey mirrors middleware.CtxRequestID; pkg code does not import internal packages.
const requestIDKey = "request_id"

// Envelope is the body of every JSON response.
type Envelope[T any] struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      T         `json:"data,omitempty"`
	Meta      any       `json:"meta,omitempty"`
	Error     any       `json:"error,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func envelope[T any](ctx *gin.Context, ok bool, message string) Envelope[T] {
	return Envelope[T]{
		Success:   ok,
		Message:   message,
		RequestID: ctx.GetString(requestIDKey),
		Timestamp: time.Now().UTC(),
	}
}

// JSON writes a success envelope; status 0 means 200.
func JSON[T any](ctx *gin.Context, status int, data T, message string, meta any) {
	if status == 0 {
		status = http.StatusOK
	}
	env := envelope[T](ctx, true, message)
	env.Data = data
	env.Meta = meta
	ctx.JSON(status, env)
}

// Fail writes an error envelope carrying detail under "error".
func Fail(ctx *gin.Context, status int, message string, detail any) {
	env := envelope[any](ctx, false, message)
	env.Error = detail
	ctx.JSON(status, env)
}

// Abort is Fail followed by stopping the handler chain.
func Abort(ctx *gin.Context, status int, message string, detail any) {
	Fail(ctx, status, message, detail)
	ctx.Abort()
}
