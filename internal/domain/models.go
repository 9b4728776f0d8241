package domain

import "time"

// Stage represents a pipeline stage of an opportunity
type Stage string

const (
	StageQualification       Stage = "Qualification"
	StageSolutionMapping     Stage = "Solution Mapping"
	StageTechnicalEvaluation Stage = "Technical Evaluation"
	StageEBSignOff           Stage = "EB Sign Off"
	StageContractNegotiation Stage = "Contract Negotiation"
	StageClosedWon           Stage = "Closed Won"
	StageClosedLost          Stage = "Closed Lost"
)

// OpenStages lists the non-terminal stages in pipeline order
var OpenStages = []Stage{
	StageQualification,
	StageSolutionMapping,
	StageTechnicalEvaluation,
	StageEBSignOff,
	StageContractNegotiation,
}

// Win probabilities by stage
var stageProbabilities = map[Stage]int{
	StageQualification:       10,
	StageSolutionMapping:     25,
	StageTechnicalEvaluation: 50,
	StageEBSignOff:           75,
	StageContractNegotiation: 90,
	StageClosedWon:           100,
	StageClosedLost:          0,
}

var stageOrder = map[Stage]int{
	StageQualification:       0,
	StageSolutionMapping:     1,
	StageTechnicalEvaluation: 2,
	StageEBSignOff:           3,
	StageContractNegotiation: 4,
	StageClosedWon:           5,
	StageClosedLost:          6,
}

// Probability returns the win probability for the stage
func (s Stage) Probability() int {
	return stageProbabilities[s]
}

// Order returns the stage's position in the pipeline (closed stages last)
func (s Stage) Order() int {
	return stageOrder[s]
}

// IsOpen reports whether the stage is a non-terminal pipeline stage
func (s Stage) IsOpen() bool {
	return s != StageClosedWon && s != StageClosedLost
}

// IsValid checks if the Stage is a valid enum value
func (s Stage) IsValid() bool {
	_, ok := stageOrder[s]
	return ok
}

// StageBenchmark is the expected (min, max) day range a deal spends in a stage
type StageBenchmark struct {
	MinDays int
	MaxDays int
}

var stageBenchmarks = map[Stage]StageBenchmark{
	StageQualification:       {MinDays: 7, MaxDays: 14},
	StageSolutionMapping:     {MinDays: 14, MaxDays: 21},
	StageTechnicalEvaluation: {MinDays: 21, MaxDays: 35},
	StageEBSignOff:           {MinDays: 10, MaxDays: 21},
	StageContractNegotiation: {MinDays: 14, MaxDays: 28},
}

// Benchmark returns the velocity benchmark for an open stage.
// Closed stages have no benchmark.
func (s Stage) Benchmark() (StageBenchmark, bool) {
	b, ok := stageBenchmarks[s]
	return b, ok
}

// DealType represents the classification of a deal
type DealType string

const (
	DealTypeNewBusiness DealType = "New Business"
	DealTypeUpsell      DealType = "Upsell"
)

// SecurityStatus represents the state of a customer security review
type SecurityStatus string

const (
	SecurityNotStarted SecurityStatus = "Not Started"
	SecurityInProgress SecurityStatus = "In Progress"
	SecurityComplete   SecurityStatus = "Complete"
)

// RiskLevel represents the risk tier assigned to an open opportunity
type RiskLevel string

const (
	RiskLevelHealthy  RiskLevel = "healthy"
	RiskLevelAtRisk   RiskLevel = "at_risk"
	RiskLevelHighRisk RiskLevel = "high_risk"
)

// IsValid checks if the RiskLevel is a valid enum value
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLevelHealthy, RiskLevelAtRisk, RiskLevelHighRisk:
		return true
	}
	return false
}

// CompetitorNone is the sentinel value for "no competitor identified"
const CompetitorNone = "None identified"

// Opportunity represents one CRM deal. Records are immutable once created;
// downstream stages consume them read-only.
type Opportunity struct {
	ID                   string         `gorm:"type:varchar(18);primaryKey" json:"id"`
	Name                 string         `gorm:"type:varchar(200);not null" json:"name"`
	AccountName          string         `gorm:"type:varchar(200);not null;index;column:account_name" json:"accountName"`
	OwnerName            string         `gorm:"type:varchar(200);not null;index;column:owner_name" json:"ownerName"`
	Amount               int            `gorm:"not null" json:"amount"`
	Type                 DealType       `gorm:"type:varchar(50);not null" json:"type"`
	Stage                Stage          `gorm:"type:varchar(50);not null;index" json:"stage"`
	Probability          int            `gorm:"not null" json:"probability"`
	CloseDate            time.Time      `gorm:"type:date;not null;column:close_date" json:"closeDate"`
	CreatedDate          time.Time      `gorm:"type:date;not null;column:created_date" json:"createdDate"`
	LastActivityDate     time.Time      `gorm:"type:date;not null;column:last_activity_date" json:"lastActivityDate"`
	LastStageChangeDate  time.Time      `gorm:"type:date;not null;column:last_stage_change_date" json:"lastStageChangeDate"`
	NextStep             string         `gorm:"type:varchar(500);column:next_step" json:"nextStep"`
	EconomicBuyer        string         `gorm:"type:varchar(200);column:economic_buyer" json:"economicBuyer"`
	TechnicalChampion    string         `gorm:"type:varchar(200);column:technical_champion" json:"technicalChampion"`
	SecurityReviewStatus SecurityStatus `gorm:"type:varchar(50);not null;column:security_review_status" json:"securityReviewStatus"`
	Competitor           string         `gorm:"type:varchar(200)" json:"competitor"`
	UseCase              string         `gorm:"type:varchar(200);column:use_case" json:"useCase"`
	Description          string         `gorm:"type:text" json:"description"`
	LossReason           string         `gorm:"type:varchar(200);column:loss_reason" json:"lossReason"`
}

// TableName overrides the default table name for the snapshot store
func (Opportunity) TableName() string {
	return "opportunities"
}

// IsOpen reports whether the opportunity is still in the pipeline
func (o *Opportunity) IsOpen() bool {
	return o.Stage.IsOpen()
}

// Alert is a precomputed risk flag attached to exactly one open opportunity.
// The scoring model that produces alerts is an external collaborator; records
// are consumed read-only and enriched in-memory only.
type Alert struct {
	OpportunityID     string    `json:"id" validate:"required"`
	RiskLevel         RiskLevel `json:"risk_level" validate:"required,oneof=healthy at_risk high_risk"`
	RiskScore         float64   `json:"risk_score" validate:"gte=0,lte=10"`
	DaysInStage       int       `json:"days_in_stage" validate:"gte=0"`
	DaysSinceActivity int       `json:"days_since_activity" validate:"gte=0"`
	DaysToClose       int       `json:"days_to_close"`
	MissingFields     []string  `json:"missing_field_list"`
	Competitor        string    `json:"competitor"`
	AccountName       string    `json:"account_name"`
	StageName         string    `json:"stage_name"`
	Amount            int       `json:"amount"`
	OwnerName         string    `json:"owner_name"`
}

// HasCompetitor reports whether a real competitor is named on the alert
func (a *Alert) HasCompetitor() bool {
	return a.Competitor != "" && a.Competitor != CompetitorNone
}

// EnrichedAlert is an alert carrying its derived presentation fields.
// The derived fields are never persisted back onto the canonical alert.
type EnrichedAlert struct {
	Alert
	RiskFactors        []string `json:"risk_factors"`
	RecommendedActions []string `json:"recommended_actions"`
}
