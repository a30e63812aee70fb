package httpapi

import "time"

// Envelope is the outward JSON structure wrapping every response. A 200 code
// always carries data; any other code never does.
type Envelope struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id"`
	Timestamp int64  `json:"timestamp"`
}

func successEnvelope(requestID string, data any) Envelope {
	return Envelope{
		Code:      200,
		Message:   "success",
		Data:      data,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}

func errorEnvelope(code int, message, requestID string) Envelope {
	return Envelope{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().Unix(),
	}
}
