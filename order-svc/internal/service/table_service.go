package service

import (
	"context"
	"strings"

	"qrmenu/order-svc/internal/domain"

	"go.uber.org/zap"
)

type TableInput struct {
	TableNumber int
	TableName   string
	Capacity    int
	Location    string
	IsActive    *bool
}

// TablePatch leaves a field untouched when it is nil. TableNumber is accepted
// only to reject a renumbering.
type TablePatch struct {
	TableNumber *int
	TableName   *string
	Capacity    *int
	Location    *string
	IsActive    *bool
}

type TableService struct {
	repo   TableRepository
	logger *zap.SugaredLogger
}

func NewTableService(repo TableRepository, logger *zap.SugaredLogger) *TableService {
	return &TableService{repo: repo, logger: logger}
}

func (s *TableService) Create(ctx context.Context, input TableInput) (*domain.Table, error) {
	if input.TableNumber < 1 {
		return nil, domain.InvalidInput("table number must be at least 1")
	}
	if input.Capacity < 0 {
		return nil, domain.InvalidInput("capacity must not be negative")
	}

	table := &domain.Table{
		TableNumber: input.TableNumber,
		TableName:   strings.TrimSpace(input.TableName),
		QRCode:      domain.QRToken(input.TableNumber),
		Capacity:    input.Capacity,
		Location:    strings.TrimSpace(input.Location),
		IsActive:    true,
	}
	if table.TableName == "" {
		table.TableName = domain.DefaultTableName(input.TableNumber)
	}
	if table.Capacity == 0 {
		table.Capacity = domain.DefaultTableCapacity
	}
	if table.Location == "" {
		table.Location = domain.DefaultTableLocation
	}
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}

	if err := s.repo.CreateTable(ctx, table); err != nil {
		return nil, err
	}
	s.logger.Infow("table created", "table_id", table.ID, "table_number", table.TableNumber, "qr_code", table.QRCode)
	return table, nil
}

func (s *TableService) Update(ctx context.Context, id int, patch TablePatch) (*domain.Table, error) {
	table, err := s.repo.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.TableNumber != nil && *patch.TableNumber != table.TableNumber {
		return nil, domain.InvalidInput("table number cannot be changed, create a new table instead")
	}
	if patch.TableName != nil {
		name := strings.TrimSpace(*patch.TableName)
		if name == "" {
			name = domain.DefaultTableName(table.TableNumber)
		}
		table.TableName = name
	}
	if patch.Capacity != nil {
		if *patch.Capacity < 1 {
			return nil, domain.InvalidInput("capacity must be at least 1")
		}
		table.Capacity = *patch.Capacity
	}
	if patch.Location != nil {
		table.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.IsActive != nil {
		table.IsActive = *patch.IsActive
	}

	if err := s.repo.UpdateTable(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

func (s *TableService) Delete(ctx context.Context, id int) error {
	affected, err := s.repo.DeleteTable(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NotFound("table")
	}
	return nil
}

func (s *TableService) Get(ctx context.Context, id int) (*domain.Table, error) {
	return s.repo.GetTable(ctx, id)
}

func (s *TableService) List(ctx context.Context) ([]domain.Table, error) {
	return s.repo.ListTables(ctx)
}

// ResolveByQR maps a scanned token to its table. Inactive tables do not take orders.
func (s *TableService) ResolveByQR(ctx context.Context, qrCode string) (*domain.Table, error) {
	qrCode = strings.TrimSpace(qrCode)
	if qrCode == "" {
		return nil, domain.InvalidInput("qr code is required")
	}
	table, err := s.repo.GetTableByQRCode(ctx, qrCode)
	if err != nil {
		return nil, err
	}
	if !table.IsActive {
		return nil, domain.ErrTableInactive
	}
	return table, nil
}
