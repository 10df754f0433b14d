package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-sales-distribution-service/internal/domain"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-sales-distribution-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DefaultVisitRepository struct {
	db *gorm.DB
}

func NewDefaultVisitRepository(db *gorm.DB) *DefaultVisitRepository {
	return &DefaultVisitRepository{db: db}
}

func (r *DefaultVisitRepository) CreateVisit(ctx context.Context, visit *domain.Visit) error {
	visitModel := mappers.ToGORMVisit(visit)
	visitModel.ID = uuid.New().String()
	if visitModel.CreatedAt.IsZero() {
		visitModel.CreatedAt = time.Now().UTC()
	}
	if err := r.db.WithContext(ctx).Create(visitModel).Error; err != nil {
		return err
	}
	visit.ID = visitModel.ID
	visit.CreatedAt = visitModel.CreatedAt
	return nil
}

// SQLVisitCounter counts routed visits straight from the visits table.
// Increment is a no-op, the stored visit is the increment.
type SQLVisitCounter struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLVisitCounter(db *gorm.DB) *SQLVisitCounter {
	return &SQLVisitCounter{db: db, now: func() time.Time { return time.Now().UTC() }}
}

type pageCountRow struct {
	SalesPageID string
	Total       int64
	Today       int64
}

func (c *SQLVisitCounter) Counts(ctx context.Context, pageIDs []string) (map[string]domain.PageCounts, error) {
	counts := make(map[string]domain.PageCounts, len(pageIDs))
	if len(pageIDs) == 0 {
		return counts, nil
	}

	now := c.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var rows []pageCountRow
	if err := c.db.WithContext(ctx).
		Model(&models.VisitModel{}).
		Select("sales_page_id, COUNT(*) AS total, SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END) AS today", dayStart).
		Where("sales_page_id IN ?", pageIDs).
		Group("sales_page_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.SalesPageID] = domain.PageCounts{Today: row.Today, Total: row.Total}
	}
	return counts, nil
}

func (c *SQLVisitCounter) Increment(ctx context.Context, pageID string) error {
	return nil
}
