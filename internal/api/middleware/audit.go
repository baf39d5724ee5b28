package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

var sensitiveFields = []string{"password", "confirm_password"}

// maxAuditBody 审计日志中请求/响应体的最大记录字节数
const maxAuditBody = 16 << 10

// peekBody reads at most maxAuditBody bytes of the request body for logging and
// leaves the full body readable for the handler.
func peekBody(r *http.Request) (body []byte, truncated bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false
	}
	body, _ = io.ReadAll(io.LimitReader(r.Body, maxAuditBody+1))
	if len(body) > maxAuditBody {
		truncated = true
	}
	r.Body = struct {
		io.Reader
		io.Closer
	}{io.MultiReader(bytes.NewReader(body), r.Body), r.Body}
	if truncated {
		body = body[:maxAuditBody]
	}
	return body, truncated
}

// auditBody renders a request body for the audit log. Truncated bodies are not
// logged because credentials in them cannot be redacted.
func auditBody(body []byte, truncated bool) string {
	if truncated {
		return "[TRUNCATED]"
	}
	return redactBody(body)
}

// redactBody masks credential fields of a JSON object body. Other bodies are
// returned unchanged.
func redactBody(body []byte) string {
	if len(body) == 0 || body[0] != '{' {
		return string(body)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return string(body)
	}
	masked := false
	for _, name := range sensitiveFields {
		if _, ok := fields[name]; ok {
			fields[name] = json.RawMessage(`"***"`)
			masked = true
		}
	}
	if !masked {
		return string(body)
	}
	out, err := json.Marshal(fields)
	if err != nil {
		return "[REDACTED]"
	}
	return string(out)
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if room := maxAuditBody - r.body.Len(); room > 0 {
		if len(b) > room {
			r.body.Write(b[:room])
		} else {
			r.body.Write(b)
		}
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		reqBody, truncated := peekBody(c.Request)

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("req_body", auditBody(reqBody, truncated)),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(ctx, "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", w.body.String()),
		)
	}
}
