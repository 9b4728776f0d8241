package repository

import (
	"context"

	"github.com/revenueops/pipeline-health/internal/domain"
	"gorm.io/gorm"
)

// OpportunityRepository persists dataset snapshots for the external
// SQL-based scoring model to consume
type OpportunityRepository struct {
	db *gorm.DB
}

func NewOpportunityRepository(db *gorm.DB) *OpportunityRepository {
	return &OpportunityRepository{db: db}
}

// ReplaceDataset atomically swaps the stored snapshot for a new dataset
func (r *OpportunityRepository) ReplaceDataset(ctx context.Context, opportunities []domain.Opportunity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Opportunity{}).Error; err != nil {
			return err
		}
		if len(opportunities) == 0 {
			return nil
		}
		return tx.CreateInBatches(opportunities, 100).Error
	})
}

// ListAll returns the full stored snapshot
func (r *OpportunityRepository) ListAll(ctx context.Context) ([]domain.Opportunity, error) {
	var opportunities []domain.Opportunity
	err := r.db.WithContext(ctx).Order("id").Find(&opportunities).Error
	return opportunities, err
}

// ListOpen returns the stored opportunities still in the pipeline
func (r *OpportunityRepository) ListOpen(ctx context.Context) ([]domain.Opportunity, error) {
	var opportunities []domain.Opportunity
	err := r.db.WithContext(ctx).
		Where("stage NOT IN ?", []domain.Stage{domain.StageClosedWon, domain.StageClosedLost}).
		Order("id").
		Find(&opportunities).Error
	return opportunities, err
}

// CountByStage returns the stored deal count per stage
func (r *OpportunityRepository) CountByStage(ctx context.Context) (map[domain.Stage]int64, error) {
	type row struct {
		Stage domain.Stage
		N     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Opportunity{}).
		Select("stage, count(*) as n").
		Group("stage").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[domain.Stage]int64, len(rows))
	for _, r := range rows {
		counts[r.Stage] = r.N
	}
	return counts, nil
}
