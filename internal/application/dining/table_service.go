package dining

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/resto/backend/internal/domain/dining"
	"github.com/resto/backend/internal/domain/shared"
)

// TableService manages the floor plan. Occupancy itself is driven by the
// order lifecycle in OrderService; this service only covers registration,
// layout, and the manual states (reserved, maintenance).
type TableService struct {
	tableRepo dining.TableRepository
	logger    *zap.Logger
}

// NewTableService creates a new TableService
func NewTableService(tableRepo dining.TableRepository, logger *zap.Logger) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		logger:    logger,
	}
}

// RegisterTable adds a new table to the floor plan
func (s *TableService) RegisterTable(ctx context.Context, req RegisterTableRequest) (*TableDTO, error) {
	table, err := dining.NewTable(req.Capacity, req.Location)
	if err != nil {
		return nil, err
	}
	table.SetLayout(req.LayoutX, req.LayoutY)

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Info("table registered",
		zap.String("table_id", table.ID.String()),
		zap.Int("capacity", table.Capacity))

	dto := toTableDTO(table)
	return &dto, nil
}

// UpdateLayout moves a table on the floor plan
func (s *TableService) UpdateLayout(ctx context.Context, tableID uuid.UUID, x, y int) (*TableDTO, error) {
	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	table.SetLayout(x, y)

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	dto := toTableDTO(table)
	return &dto, nil
}

// SetStatus applies a manual status change: reserve, maintenance, or back to
// free. Occupied is not reachable here; only an opening order occupies a table.
func (s *TableService) SetStatus(ctx context.Context, tableID uuid.UUID, target dining.TableStatus) (*TableDTO, error) {
	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	switch target {
	case dining.TableStatusReserved:
		err = table.Reserve()
	case dining.TableStatusMaintenance:
		err = table.SetMaintenance()
	case dining.TableStatusFree:
		err = table.ReturnToService()
	default:
		err = shared.NewDomainError("INVALID_STATE",
			"Target status must be free, reserved, or maintenance")
	}
	if err != nil {
		return nil, err
	}

	if err := s.tableRepo.Save(ctx, table); err != nil {
		return nil, err
	}

	s.logger.Info("table status changed",
		zap.String("table_id", table.ID.String()),
		zap.String("status", table.Status.String()))

	dto := toTableDTO(table)
	return &dto, nil
}

// GetTable returns one table
func (s *TableService) GetTable(ctx context.Context, tableID uuid.UUID) (*TableDTO, error) {
	table, err := s.tableRepo.FindByID(ctx, tableID)
	if err != nil {
		return nil, err
	}

	dto := toTableDTO(table)
	return &dto, nil
}

// ListTables returns the floor plan, optionally filtered by status or location
func (s *TableService) ListTables(ctx context.Context, filter shared.Filter) ([]TableDTO, error) {
	tables, err := s.tableRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]TableDTO, 0, len(tables))
	for i := range tables {
		dtos = append(dtos, toTableDTO(&tables[i]))
	}
	return dtos, nil
}
