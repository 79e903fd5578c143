package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/lightthelamp/internal/common/uuid UUID

// UUID generates identifiers for picks and events
type UUID interface {
	NewUUID() string
}

// DefaultUUID generates time-ordered v7 UUIDs so pick ids sort by creation
type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a new UUID, falling back to v4 if v7 generation fails
func (d *DefaultUUID) NewUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
