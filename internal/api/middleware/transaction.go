package middleware

import (
	"Inkwell/internal/pkg/database"
	"Inkwell/internal/pkg/response"
	"bytes"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Transaction 每个请求一个事务. With commit set the transaction is committed when
// the handler returns a status below 400 without recording gin errors. Every other
// outcome, panics included, rolls back.
//
// The response is held back until the transaction is released, so a failed commit
// reaches the client as an error instead of the handler's success body.
func Transaction(db *gorm.DB, commit bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, scope, err := database.Begin(c.Request.Context(), db)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Request = c.Request.WithContext(ctx)

		origin := c.Writer
		held := &heldWriter{ResponseWriter: origin, status: http.StatusOK}
		c.Writer = held

		finished := false
		defer func() {
			c.Writer = origin
			if finished {
				return
			}
			// handler panicked
			if err := scope.Release(false); err != nil {
				log.ErrorContext(ctx, "transaction rollback failed", "err", err)
			}
		}()

		c.Next()
		finished = true
		c.Writer = origin

		ok := commit && held.status < http.StatusBadRequest && len(c.Errors) == 0
		if err := scope.Release(ok); err != nil {
			log.ErrorContext(ctx, "transaction release failed", "commit", ok, "err", err)
			if ok {
				origin.Header().Del("Set-Cookie")
				response.Error(c, err)
				return
			}
		}
		held.flush()
	}
}

// heldWriter buffers status and body until flush.
type heldWriter struct {
	gin.ResponseWriter
	status  int
	body    bytes.Buffer
	written bool
}

func (w *heldWriter) WriteHeader(code int) {
	if code > 0 && !w.written {
		w.status = code
	}
}

func (w *heldWriter) WriteHeaderNow() {
	w.written = true
}

func (w *heldWriter) Write(b []byte) (int, error) {
	w.written = true
	return w.body.Write(b)
}

func (w *heldWriter) WriteString(s string) (int, error) {
	w.written = true
	return w.body.WriteString(s)
}

func (w *heldWriter) Status() int {
	return w.status
}

func (w *heldWriter) Size() int {
	if !w.written {
		return -1
	}
	return w.body.Len()
}

func (w *heldWriter) Written() bool {
	return w.written
}

// Flush is deferred to flush; streaming through a transaction is not supported.
func (w *heldWriter) Flush() {}

func (w *heldWriter) flush() {
	w.ResponseWriter.WriteHeader(w.status)
	if w.body.Len() == 0 {
		w.ResponseWriter.WriteHeaderNow()
		return
	}
	if _, err := w.ResponseWriter.Write(w.body.Bytes()); err != nil {
		log.Warn("response write failed", "err", err)
	}
}
