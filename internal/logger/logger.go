package logger

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

type Fields map[string]any

var log = zap.Must(zap.NewProduction()).Sugar()

// sensitive keys are masked before any payload reaches the log stream.
// Keys are compared after lowercasing and stripping separators.
var sensitiveKeys = map[string]struct{}{
	"pin":                {},
	"pinhash":            {},
	"securityanswer":     {},
	"securityanswerhash": {},
	"password":           {},
}

func Replace(l *zap.Logger) {
	log = l.Sugar()
}

func Info(message string, fields Fields) {
	log.Infow(message, flatten(fields)...)
}

func Error(message string, err error, fields Fields) {
	args := flatten(fields)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	log.Errorw(message, args...)
}

// SanitizePayload deep-copies a payload through JSON, masking sensitive keys,
// so request bodies can be logged or stored as audit trails.
func SanitizePayload(payload any) any {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "<unavailable>"
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return "<unavailable>"
	}

	return sanitizeValue(data)
}

func flatten(fields Fields) []any {
	args := make([]any, 0, 2*len(fields))
	for key, value := range fields {
		if isSensitiveKey(key) {
			args = append(args, key, "******")
			continue
		}
		args = append(args, key, sanitizeValue(value))
	}
	return args
}

func sanitizeValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, inner := range typed {
			if isSensitiveKey(key) {
				out[key] = "******"
				continue
			}
			out[key] = sanitizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, sanitizeValue(item))
		}
		return out
	default:
		return value
	}
}

func isSensitiveKey(key string) bool {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(key), "-", ""))
	normalized = strings.ReplaceAll(normalized, "_", "")
	_, ok := sensitiveKeys[normalized]
	return ok
}
