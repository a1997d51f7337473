package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// MarshalRule serializes a denormalized recurrence rule for a JSONB column.
// A nil rule maps to SQL NULL.
func MarshalRule(rule *domain.RecurrenceRule) ([]byte, error) {
	if rule == nil {
		return nil, nil
	}
	data, err := json.Marshal(rule)
	if err != nil {
		return nil, fmt.Errorf("marshal recurrence rule: %w", err)
	}
	return data, nil
}

// UnmarshalRule parses a JSONB recurrence column. NULL maps to nil.
func UnmarshalRule(data []byte) (*domain.RecurrenceRule, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var rule domain.RecurrenceRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return nil, fmt.Errorf("unmarshal recurrence rule: %w", err)
	}
	return &rule, nil
}
