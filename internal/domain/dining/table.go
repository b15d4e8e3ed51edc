package dining

import (
	"fmt"

	"github.com/resto/backend/internal/domain/shared"
)

// TableStatus represents the occupancy state of a dining table
type TableStatus string

const (
	TableStatusFree        TableStatus = "free"
	TableStatusOccupied    TableStatus = "occupied"
	TableStatusReserved    TableStatus = "reserved"
	TableStatusMaintenance TableStatus = "maintenance"
)

// String returns the string representation of TableStatus
func (s TableStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a known value
func (s TableStatus) IsValid() bool {
	switch s {
	case TableStatusFree, TableStatusOccupied, TableStatusReserved, TableStatusMaintenance:
		return true
	}
	return false
}

// Table is a dining table. Its occupancy changes as a side effect of order
// lifecycle transitions, never on its own.
type Table struct {
	shared.BaseAggregateRoot
	Capacity int         `gorm:"not null"`
	Status   TableStatus `gorm:"type:varchar(20);not null;default:'free';index"`
	Location string      `gorm:"type:varchar(100)"`
	LayoutX  int         `gorm:"not null;default:0"`
	LayoutY  int         `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Table) TableName() string {
	return "dining_tables"
}

// NewTable creates a new dining table
func NewTable(capacity int, location string) (*Table, error) {
	if capacity <= 0 {
		return nil, shared.NewDomainError("VALIDATION", "Capacity must be positive")
	}

	return &Table{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Capacity:          capacity,
		Status:            TableStatusFree,
		Location:          location,
	}, nil
}

// Occupy marks the table as occupied when an order opens on it
func (t *Table) Occupy() error {
	if t.Status == TableStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Table is already occupied")
	}
	if t.Status == TableStatusMaintenance {
		return shared.NewDomainError("INVALID_STATE", "Table is under maintenance")
	}

	t.Status = TableStatusOccupied
	t.Touch()
	t.IncrementVersion()

	return nil
}

// Release marks the table as free when its order reaches a terminal status
func (t *Table) Release() error {
	if t.Status != TableStatusOccupied {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot release a table in %s status", t.Status))
	}

	t.Status = TableStatusFree
	t.Touch()
	t.IncrementVersion()

	return nil
}

// Reserve marks a free table as reserved
func (t *Table) Reserve() error {
	if t.Status != TableStatusFree {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot reserve a table in %s status", t.Status))
	}

	t.Status = TableStatusReserved
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetMaintenance takes the table out of service
func (t *Table) SetMaintenance() error {
	if t.Status == TableStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Cannot service an occupied table")
	}

	t.Status = TableStatusMaintenance
	t.Touch()
	t.IncrementVersion()

	return nil
}

// ReturnToService puts a reserved or serviced table back in the free pool
func (t *Table) ReturnToService() error {
	if t.Status == TableStatusOccupied {
		return shared.NewDomainError("INVALID_STATE", "Cannot free an occupied table directly")
	}
	if t.Status == TableStatusFree {
		return nil
	}

	t.Status = TableStatusFree
	t.Touch()
	t.IncrementVersion()

	return nil
}

// SetLayout positions the table on the floor plan
func (t *Table) SetLayout(x, y int) {
	t.LayoutX = x
	t.LayoutY = y
	t.Touch()
}
