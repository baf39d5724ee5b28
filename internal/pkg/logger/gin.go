package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessRecord struct {
	Time     string `json:"time"`
	Level    string `json:"level"`
	Msg      string `json:"msg"`
	TraceID  string `json:"trace_id,omitempty"`
	Method   string `json:"method"`
	Path     string `json:"path"`
	Status   int    `json:"status"`
	Latency  string `json:"latency"`
	ClientIP string `json:"client_ip"`
	Size     int    `json:"size"`
	Error    string `json:"error,omitempty"`
}

// formatAccess renders one gin access line as JSON, matching the slog output.
func formatAccess(p gin.LogFormatterParams) string {
	rec := accessRecord{
		Time:     p.TimeStamp.Format(time.RFC3339),
		Level:    "INFO",
		Msg:      "GIN_ACCESS",
		Method:   p.Method,
		Path:     p.Path,
		Status:   p.StatusCode,
		Latency:  p.Latency.String(),
		ClientIP: p.ClientIP,
		Size:     p.BodySize,
		Error:    p.ErrorMessage,
	}
	if id, ok := p.Keys[TraceIDAttr].(string); ok {
		rec.TraceID = id
	} else if p.Request != nil {
		rec.TraceID, _ = TraceIDFrom(p.Request.Context())
	}
	if p.StatusCode >= 500 {
		rec.Level = "ERROR"
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	return string(line) + "\n"
}

// SetupGin installs the JSON access log and panic recovery.
func SetupGin(r *gin.Engine) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output:    LogWriter,
		Formatter: formatAccess,
		SkipPaths: []string{"/ping"},
	}))

	r.Use(gin.Recovery())
}
