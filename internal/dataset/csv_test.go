package dataset_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/revenueops/pipeline-health/internal/dataset"
	"github.com/revenueops/pipeline-health/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOpportunity() domain.Opportunity {
	return domain.Opportunity{
		ID:                   "006A1b2C3d4E5f6G7h",
		Name:                 "TechCorp - Enterprise AI",
		AccountName:          "TechCorp",
		OwnerName:            "Sarah Chen",
		Amount:               250000,
		Type:                 domain.DealTypeNewBusiness,
		Stage:                domain.StageTechnicalEvaluation,
		Probability:          50,
		CloseDate:            time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC),
		CreatedDate:          time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		LastActivityDate:     time.Date(2025, 10, 27, 0, 0, 0, 0, time.UTC),
		LastStageChangeDate:  time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		NextStep:             "Security review call scheduled",
		EconomicBuyer:        "Jane Doe (VP Ops)",
		TechnicalChampion:    "John Smith (CTO)",
		SecurityReviewStatus: domain.SecurityInProgress,
		Competitor:           domain.CompetitorNone,
		UseCase:              "Customer support automation",
		Description:          "Evaluating for customer support automation. Strong engagement from technical team.",
	}
}

func TestWriteReadOpportunities_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opportunities.csv")
	want := []domain.Opportunity{sampleOpportunity()}

	require.NoError(t, dataset.WriteOpportunities(path, want))

	got, err := dataset.ReadOpportunities(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadOpportunities_ColumnOrderIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opportunities.csv")
	want := sampleOpportunity()

	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	// Header order reversed; lookup is by name, not position
	values := opportunityValues(want)
	header := make([]string, 0, len(dataset.Header))
	row := make([]string, 0, len(values))
	for i := len(dataset.Header) - 1; i >= 0; i-- {
		header = append(header, dataset.Header[i])
		row = append(row, values[i])
	}
	require.NoError(t, w.Write(header))
	require.NoError(t, w.Write(row))
	w.Flush()
	require.NoError(t, w.Error())
	require.NoError(t, f.Close())

	got, err := dataset.ReadOpportunities(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

// opportunityValues renders a record in the canonical header order
func opportunityValues(o domain.Opportunity) []string {
	return []string{
		o.ID, o.Name, o.AccountName, o.OwnerName, "250000", string(o.Type),
		string(o.Stage), "50", "2025-12-15", "2025-08-01",
		"2025-10-27", "2025-10-01", o.NextStep,
		o.EconomicBuyer, o.TechnicalChampion, string(o.SecurityReviewStatus),
		o.Competitor, o.UseCase, o.Description, o.LossReason,
	}
}

func TestReadOpportunities_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opportunities.csv")
	require.NoError(t, os.WriteFile(path, []byte("Id,Name\n006A,TechCorp\n"), 0o644))

	_, err := dataset.ReadOpportunities(path)
	require.Error(t, err)

	var missing *domain.MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "Account.Name", missing.Column)
}

func TestReadOpportunities_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opportunities.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := dataset.ReadOpportunities(path)
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)
}

func TestReadOpportunities_MalformedFields(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
	}{
		{"bad amount", "Amount", "a lot"},
		{"bad probability", "Probability", "fifty"},
		{"bad date", "CloseDate", "15/12/2025"},
		{"unknown stage", "StageName", "Negotiation"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "opportunities.csv")
			opp := sampleOpportunity()
			row := opportunityValues(opp)
			for i, name := range dataset.Header {
				if name == tc.field {
					row[i] = tc.value
				}
			}

			f, err := os.Create(path)
			require.NoError(t, err)
			w := csv.NewWriter(f)
			require.NoError(t, w.Write(dataset.Header))
			require.NoError(t, w.Write(row))
			w.Flush()
			require.NoError(t, w.Error())
			require.NoError(t, f.Close())

			_, err = dataset.ReadOpportunities(path)
			require.Error(t, err)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field)
			assert.Equal(t, 1, fieldErr.Record)
		})
	}
}
