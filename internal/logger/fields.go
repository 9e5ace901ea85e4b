package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldCandidateID is the structured log field key for the candidate identifier.
	FieldCandidateID = "candidate_id"
	// FieldCandidateName is the structured log field key for the candidate display name.
	FieldCandidateName = "candidate_name"
	// FieldRoleID is the structured log field key for the role identifier.
	FieldRoleID = "role_id"
	// FieldRoleName is the structured log field key for the role display name.
	FieldRoleName = "role_name"
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

// WithFields safely attaches the provided fields to the logger.
// A nil logger is replaced with a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields describes a candidate. Empty values are skipped.
func CandidateFields(id, name string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCandidateID, Value: id},
		StringField{Key: FieldCandidateName, Value: name},
	)
}

// RoleFields describes a role. Empty values are skipped.
func RoleFields(id, name string) []zap.Field {
	return StringFields(
		StringField{Key: FieldRoleID, Value: id},
		StringField{Key: FieldRoleName, Value: name},
	)
}
