package agenda

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

var colorHexRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ListEventTypes returns all event categories.
func (s *Service) ListEventTypes(ctx context.Context) ([]domain.EventType, error) {
	types, err := s.events.ListTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("agenda.ListEventTypes: %w", err)
	}
	return types, nil
}

// CreateEventType creates a new event category. An empty colorHex falls
// back to a neutral gray.
func (s *Service) CreateEventType(ctx context.Context, name, colorHex string) (*domain.EventType, error) {
	if name == "" {
		return nil, domain.NewValidationError("name", "required")
	}
	if colorHex == "" {
		colorHex = "#888888"
	} else if !colorHexRe.MatchString(colorHex) {
		return nil, domain.NewValidationError("color_hex", "must look like #RRGGBB")
	}

	t := &domain.EventType{ID: uuid.New(), Name: name, ColorHex: colorHex}
	if err := s.events.CreateType(ctx, t); err != nil {
		return nil, fmt.Errorf("agenda.CreateEventType: %w", err)
	}
	return t, nil
}
