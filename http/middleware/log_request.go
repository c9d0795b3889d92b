package middleware

import (
	"fmt"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/xy-planning-network/vouch"
	"github.com/xy-planning-network/vouch/logger"
)

// A LogRequestRecord is what LogRequest logs about each request it handles.
type LogRequestRecord struct {
	BodySize       int64  `json:"bodySize"`
	Duration       string `json:"duration,omitempty"`
	Host           string `json:"host"`
	ID             string `json:"id,omitempty"`
	IPAddr         string `json:"ipAddr,omitempty"`
	Method         string `json:"method"`
	Path           string `json:"path"`
	Protocol       string `json:"protocol"`
	Referrer       string `json:"referrer,omitempty"`
	ReqContentType string `json:"reqContentType,omitempty"`
	Scheme         string `json:"scheme,omitempty"`
	Status         int    `json:"status"`
	URI            string `json:"uri"`
	UserAgent      string `json:"userAgent,omitempty"`
}

// LogRequest logs the request's method, requested URL, originating IP address
// and the status of the response using the enclosed implementation of logger.Logger.
// Call InjectIPAddress and RequestID before LogRequest to include their values.
//
// LogRequest scrubs the values for the following keys:
// - password
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			vouch.Mask(q, "password")

			uri := r.URL.Path
			if query := q.Encode(); query != "" {
				uri += "?" + query
			}

			m := httpsnoop.CaptureMetrics(h, w, r)

			record := LogRequestRecord{
				BodySize:       m.Written,
				Duration:       m.Duration.String(),
				Host:           r.Host,
				Method:         r.Method,
				Path:           r.URL.Path,
				Protocol:       r.Proto,
				Referrer:       r.Referer(),
				ReqContentType: r.Header.Get("Content-Type"),
				Scheme:         r.URL.Scheme,
				Status:         m.Code,
				URI:            uri,
				UserAgent:      r.UserAgent(),
			}

			if id, ok := r.Context().Value(vouch.RequestIDKey).(string); ok {
				record.ID = id
			}

			if ip, ok := IPAddress(r.Context()); ok {
				record.IPAddr = ip
			}

			msg := fmt.Sprintf("%s %s %d", record.Method, record.URI, record.Status)
			ls.Info(msg, &logger.LogContext{Data: map[string]any{"request": record}})
		})
	}
}
