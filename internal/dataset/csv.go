// Package dataset implements the fixed input/output contracts: the
// opportunity CSV shape, the alert JSON feed and the report JSON emitted for
// the rendering layer.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/revenueops/pipeline-health/internal/domain"
)

const dateLayout = "2006-01-02"

// Header is the fixed column order of the opportunity CSV contract
var Header = []string{
	"Id", "Name", "Account.Name", "Owner.Name", "Amount", "Type",
	"StageName", "Probability", "CloseDate", "CreatedDate",
	"LastActivityDate", "LastStageChangeDate", "NextStep",
	"Economic_Buyer__c", "Technical_Champion__c", "Security_Review_Status__c",
	"Competitor__c", "Use_Case__c", "Description", "Loss_Reason__c",
}

// WriteOpportunities writes the dataset as delimited tabular text with the
// fixed header order
func WriteOpportunities(path string, opportunities []domain.Opportunity) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := range opportunities {
		if err := w.Write(opportunityRow(&opportunities[i])); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return nil
}

func opportunityRow(o *domain.Opportunity) []string {
	return []string{
		o.ID,
		o.Name,
		o.AccountName,
		o.OwnerName,
		strconv.Itoa(o.Amount),
		string(o.Type),
		string(o.Stage),
		strconv.Itoa(o.Probability),
		o.CloseDate.Format(dateLayout),
		o.CreatedDate.Format(dateLayout),
		o.LastActivityDate.Format(dateLayout),
		o.LastStageChangeDate.Format(dateLayout),
		o.NextStep,
		o.EconomicBuyer,
		o.TechnicalChampion,
		string(o.SecurityReviewStatus),
		o.Competitor,
		o.UseCase,
		o.Description,
		o.LossReason,
	}
}

// ReadOpportunities loads the opportunity CSV. A missing expected column is
// fatal and names the offending column; malformed field values are fatal and
// name the record and field.
func ReadOpportunities(path string) ([]domain.Opportunity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrEmptyDataset)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	for _, name := range Header {
		if _, ok := cols[name]; !ok {
			return nil, &domain.MissingColumnError{Column: name}
		}
	}

	opportunities := make([]domain.Opportunity, 0, len(rows)-1)
	for n, row := range rows[1:] {
		opp, err := parseOpportunity(row, cols, n+1)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, opp)
	}
	return opportunities, nil
}

func parseOpportunity(row []string, cols map[string]int, record int) (domain.Opportunity, error) {
	field := func(name string) string { return row[cols[name]] }

	amount, err := strconv.Atoi(field("Amount"))
	if err != nil {
		return domain.Opportunity{}, &domain.FieldError{Record: record, Field: "Amount", Reason: err.Error()}
	}
	probability, err := strconv.Atoi(field("Probability"))
	if err != nil {
		return domain.Opportunity{}, &domain.FieldError{Record: record, Field: "Probability", Reason: err.Error()}
	}

	dates := make(map[string]time.Time, 4)
	for _, name := range []string{"CloseDate", "CreatedDate", "LastActivityDate", "LastStageChangeDate"} {
		d, err := time.Parse(dateLayout, field(name))
		if err != nil {
			return domain.Opportunity{}, &domain.FieldError{Record: record, Field: name, Reason: err.Error()}
		}
		dates[name] = d
	}

	stage := domain.Stage(field("StageName"))
	if !stage.IsValid() {
		return domain.Opportunity{}, &domain.FieldError{Record: record, Field: "StageName", Reason: "unknown stage " + field("StageName")}
	}

	return domain.Opportunity{
		ID:                   field("Id"),
		Name:                 field("Name"),
		AccountName:          field("Account.Name"),
		OwnerName:            field("Owner.Name"),
		Amount:               amount,
		Type:                 domain.DealType(field("Type")),
		Stage:                stage,
		Probability:          probability,
		CloseDate:            dates["CloseDate"],
		CreatedDate:          dates["CreatedDate"],
		LastActivityDate:     dates["LastActivityDate"],
		LastStageChangeDate:  dates["LastStageChangeDate"],
		NextStep:             field("NextStep"),
		EconomicBuyer:        field("Economic_Buyer__c"),
		TechnicalChampion:    field("Technical_Champion__c"),
		SecurityReviewStatus: domain.SecurityStatus(field("Security_Review_Status__c")),
		Competitor:           field("Competitor__c"),
		UseCase:              field("Use_Case__c"),
		Description:          field("Description"),
		LossReason:           field("Loss_Reason__c"),
	}, nil
}
