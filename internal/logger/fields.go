package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldProvider is the structured log field key for the LLM provider name.
	FieldProvider = "llm_provider"
	// FieldModel is the structured log field key for the LLM model identifier.
	FieldModel = "llm_model"
	// FieldSession is the structured log field key for the interview session id.
	FieldSession = "session_id"
	// FieldStage is the structured log field key for the interview stage.
	FieldStage = "stage"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger. A nil logger
// becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	logger = OrNop(logger)

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CommonFields returns the fields that describe an LLM provider and model.
// Empty values are ignored to keep log entries compact.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the LLM provider and model fields to the logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}

// WithSession attaches the session id to the logger.
func WithSession(logger *zap.Logger, sessionID string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldSession, Value: sessionID})...)
}
