package model

import (
	"shareit/shared/timezone"
	"time"
)

type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
}

// NewMetadata stamps both timestamps with the current application time.
func NewMetadata() Metadata {
	now := timezone.Now()

	return Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
	}
}
