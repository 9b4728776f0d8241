package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/revenueops/pipeline-health/internal/dataset"
	"github.com/revenueops/pipeline-health/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAlerts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.json")
	feed := `[
		{
			"id": "006A1b2C3d4E5f6G7h",
			"risk_level": "high_risk",
			"risk_score": 8.5,
			"days_in_stage": 72,
			"days_since_activity": 18,
			"days_to_close": -5,
			"missing_field_list": ["economic_buyer"],
			"competitor": "OpenAI",
			"account_name": "TechCorp",
			"stage_name": "Technical Evaluation",
			"amount": 250000,
			"owner_name": "Sarah Chen"
		},
		{
			"id": "006B1b2C3d4E5f6G7h",
			"risk_level": "at_risk",
			"risk_score": 4.2,
			"days_in_stage": 30,
			"days_since_activity": 8,
			"days_to_close": 21,
			"account_name": "DataSystems Inc",
			"stage_name": "Contract Negotiation",
			"amount": 120000,
			"owner_name": "Marcus Johnson"
		}
	]`
	require.NoError(t, os.WriteFile(path, []byte(feed), 0o644))

	alerts, err := dataset.ReadAlerts(path)
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, domain.Alert{
		OpportunityID:     "006A1b2C3d4E5f6G7h",
		RiskLevel:         domain.RiskLevelHighRisk,
		RiskScore:         8.5,
		DaysInStage:       72,
		DaysSinceActivity: 18,
		DaysToClose:       -5,
		MissingFields:     []string{"economic_buyer"},
		Competitor:        "OpenAI",
		AccountName:       "TechCorp",
		StageName:         "Technical Evaluation",
		Amount:            250000,
		OwnerName:         "Sarah Chen",
	}, alerts[0])
	assert.Equal(t, domain.RiskLevelAtRisk, alerts[1].RiskLevel)
	assert.Empty(t, alerts[1].MissingFields)
}

func TestReadAlerts_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		feed  string
		field string
	}{
		{
			"missing id",
			`[{"risk_level": "at_risk", "risk_score": 4}]`,
			"OpportunityID",
		},
		{
			"unknown risk level",
			`[{"id": "006A", "risk_level": "critical", "risk_score": 4}]`,
			"RiskLevel",
		},
		{
			"score out of range",
			`[{"id": "006A", "risk_level": "at_risk", "risk_score": 12}]`,
			"RiskScore",
		},
		{
			"negative days in stage",
			`[{"id": "006A", "risk_level": "at_risk", "risk_score": 4, "days_in_stage": -1}]`,
			"DaysInStage",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "dashboard_data.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.feed), 0o644))

			_, err := dataset.ReadAlerts(path)
			require.Error(t, err)

			var fieldErr *domain.FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tc.field, fieldErr.Field)
			assert.Equal(t, 0, fieldErr.Record)
		})
	}
}

func TestReadAlerts_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not": "an array"}`), 0o644))

	_, err := dataset.ReadAlerts(path)
	assert.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline_report.json")
	report := &domain.PipelineReport{
		Metrics: domain.PipelineMetrics{TotalOpenDeals: 3, TotalPipelineAmount: 1_000_000},
	}

	require.NoError(t, dataset.WriteReport(path, report))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"totalOpenDeals": 3`)
}
