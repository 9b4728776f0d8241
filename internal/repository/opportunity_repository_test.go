package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/revenueops/pipeline-health/internal/config"
	"github.com/revenueops/pipeline-health/internal/database"
	"github.com/revenueops/pipeline-health/internal/domain"
	"github.com/revenueops/pipeline-health/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         filepath.Join(t.TempDir(), "snapshot.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
	db, err := database.NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func storedOpportunity(id string, stage domain.Stage) domain.Opportunity {
	date := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	return domain.Opportunity{
		ID:                  id,
		Name:                "TechCorp - Enterprise AI",
		AccountName:         "TechCorp",
		OwnerName:           "Sarah Chen",
		Amount:              250000,
		Type:                domain.DealTypeNewBusiness,
		Stage:               stage,
		Probability:         stage.Probability(),
		CloseDate:           date,
		CreatedDate:         date,
		LastActivityDate:    date,
		LastStageChangeDate: date,
	}
}

func TestOpportunityRepository_ReplaceDataset(t *testing.T) {
	repo := repository.NewOpportunityRepository(setupTestDB(t))
	ctx := context.Background()

	first := []domain.Opportunity{
		storedOpportunity("006AAAAAAAAAAAAAAA", domain.StageQualification),
		storedOpportunity("006BBBBBBBBBBBBBBB", domain.StageClosedWon),
	}
	require.NoError(t, repo.ReplaceDataset(ctx, first))

	stored, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// A second replace fully supersedes the previous snapshot
	second := []domain.Opportunity{
		storedOpportunity("006CCCCCCCCCCCCCCC", domain.StageContractNegotiation),
	}
	require.NoError(t, repo.ReplaceDataset(ctx, second))

	stored, err = repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "006CCCCCCCCCCCCCCC", stored[0].ID)
}

func TestOpportunityRepository_ListOpen(t *testing.T) {
	repo := repository.NewOpportunityRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceDataset(ctx, []domain.Opportunity{
		storedOpportunity("006AAAAAAAAAAAAAAA", domain.StageTechnicalEvaluation),
		storedOpportunity("006BBBBBBBBBBBBBBB", domain.StageClosedWon),
		storedOpportunity("006CCCCCCCCCCCCCCC", domain.StageClosedLost),
	}))

	open, err := repo.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, domain.StageTechnicalEvaluation, open[0].Stage)
}

func TestOpportunityRepository_CountByStage(t *testing.T) {
	repo := repository.NewOpportunityRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.ReplaceDataset(ctx, []domain.Opportunity{
		storedOpportunity("006AAAAAAAAAAAAAAA", domain.StageQualification),
		storedOpportunity("006BBBBBBBBBBBBBBB", domain.StageQualification),
		storedOpportunity("006CCCCCCCCCCCCCCC", domain.StageClosedWon),
	}))

	counts, err := repo.CountByStage(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[domain.Stage]int64{
		domain.StageQualification: 2,
		domain.StageClosedWon:     1,
	}, counts)
}
