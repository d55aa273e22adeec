package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
)

// checkID rejects identifiers that are not UUIDs before they reach storage.
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}

func sinkOrNop(events ports.EventSink) ports.EventSink {
	if events == nil {
		return ports.NopSink{}
	}
	return events
}
