package agents

import (
	"fmt"
	"sync"
	"time"
)

// WorkflowStep is one stage of the annual benchmark submission workflow.
type WorkflowStep struct {
	Step             int      `json:"step"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	RequiredFields   []string `json:"required_fields,omitempty"`
	ResponsibleParty string   `json:"responsible_party"`
	Deadline         string   `json:"deadline,omitempty"`
}

// ChecklistItem is one task on the compliance checklist.
type ChecklistItem struct {
	ID       int    `json:"id"`
	Task     string `json:"task"`
	Category string `json:"category"`
	Required bool   `json:"required"`
	Status   string `json:"status"`
	Notes    string `json:"notes,omitempty"`
}

// Checklist is the year-anchored compliance checklist handed to
// building operators.
type Checklist struct {
	Title      string          `json:"title"`
	BuildingID string          `json:"building_id,omitempty"`
	CreatedAt  string          `json:"created_at"`
	Deadline   string          `json:"deadline"`
	Items      []ChecklistItem `json:"items"`
}

// EdgeCase is a documented unusual scenario and its recommended handling.
type EdgeCase struct {
	ID                  int    `json:"id"`
	Scenario            string `json:"scenario"`
	ProcessAffected     string `json:"process_affected"`
	Description         string `json:"description"`
	RecommendedHandling string `json:"recommended_handling"`
	Severity            string `json:"severity"`
	DocumentedAt        string `json:"documented_at"`
	Status              string `json:"status"`
}

// ValidationRule documents one rule the validator enforces.
type ValidationRule struct {
	Rule        string `json:"rule"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// CommonError documents a frequently seen submission problem.
type CommonError struct {
	Error      string `json:"error"`
	Cause      string `json:"cause"`
	Resolution string `json:"resolution"`
}

// ProcessDoc is the full process documentation bundle.
type ProcessDoc struct {
	Title           string           `json:"title"`
	RegulationYear  int              `json:"regulation_year"`
	Purpose         string           `json:"purpose"`
	Deadline        string           `json:"deadline"`
	GeneratedAt     string           `json:"generated_at"`
	Workflow        []WorkflowStep   `json:"workflow"`
	ValidationRules []ValidationRule `json:"validation_rules"`
	EdgeCases       []EdgeCase       `json:"edge_cases"`
	CommonErrors    []CommonError    `json:"common_errors"`
}

// benchmarkWorkflow is the standard annual energy-benchmarking
// submission workflow.
var benchmarkWorkflow = []WorkflowStep{
	{
		Step:             1,
		Name:             "Utility Data Collection",
		Description:      "Gather 12 months of utility data (electricity, gas) for the building",
		RequiredFields:   []string{"Date", "kWh", "Therms", "Demand"},
		ResponsibleParty: "Building owner or energy consultant",
	},
	{
		Step:             2,
		Name:             "Data Validation",
		Description:      "Validate utility data for completeness, accuracy, and format compliance",
		ResponsibleParty: "Validator agent",
	},
	{
		Step:             3,
		Name:             "Portfolio Manager Entry",
		Description:      "Enter or sync validated utility data into the benchmarking portal",
		ResponsibleParty: "Building owner or authorized agent",
	},
	{
		Step:             4,
		Name:             "Generate Benchmark Report",
		Description:      "Generate the energy benchmark report from the portal",
		ResponsibleParty: "System",
	},
	{
		Step:             5,
		Name:             "Regulatory Submission",
		Description:      "Submit benchmark data to the city buildings department",
		ResponsibleParty: "Building owner or authorized agent",
		Deadline:         "May 1st annually",
	},
	{
		Step:             6,
		Name:             "Confirmation & Record Keeping",
		Description:      "Save confirmation number and maintain audit trail",
		ResponsibleParty: "System",
	},
}

// ProcessEngineer generates the compliance checklist and process
// documentation that surround each submission cycle.
type ProcessEngineer struct {
	*Agent
	regulationYear int

	casesMu   sync.Mutex
	edgeCases []EdgeCase
}

// NewProcessEngineer creates the process engineer agent. A zero year
// defaults to the current calendar year.
func NewProcessEngineer(regulationYear int) *ProcessEngineer {
	if regulationYear == 0 {
		regulationYear = time.Now().Year()
	}
	return &ProcessEngineer{
		Agent:          newAgent("process_engineer"),
		regulationYear: regulationYear,
	}
}

// Capabilities lists what this agent provides.
func (p *ProcessEngineer) Capabilities() []string {
	return []string{
		"create_compliance_checklist",
		"generate_documentation",
		"document_validation_rules",
		"track_edge_cases",
		"document_common_errors",
	}
}

// Status returns the agent status snapshot.
func (p *ProcessEngineer) Status() StatusInfo {
	return p.statusSnapshot(p.Capabilities())
}

// CreateChecklist builds the compliance checklist for a submission year.
func (p *ProcessEngineer) CreateChecklist(buildingID string, year int) Checklist {
	if year == 0 {
		year = p.regulationYear
	}

	checklist := Checklist{
		Title:      fmt.Sprintf("Energy Benchmarking Compliance Checklist - %d", year),
		BuildingID: buildingID,
		CreatedAt:  time.Now().Format(time.RFC3339),
		Deadline:   fmt.Sprintf("%d-05-01", year),
		Items: []ChecklistItem{
			{ID: 1, Task: "Gather 12 months of utility data", Category: "data_collection", Required: true, Status: "pending", Notes: "Jan-Dec of previous year"},
			{ID: 2, Task: "Validate utility data for completeness", Category: "validation", Required: true, Status: "pending", Notes: "Use the validator agent"},
			{ID: 3, Task: "Check for negative or irrational values", Category: "validation", Required: true, Status: "pending", Notes: "Flag any anomalies"},
			{ID: 4, Task: "Verify all months are present", Category: "validation", Required: true, Status: "pending", Notes: "No gaps in data"},
			{ID: 5, Task: "Log into the benchmarking portal", Category: "submission", Required: true, Status: "pending", Notes: "Use authorized account"},
			{ID: 6, Task: "Enter/update utility data in the portal", Category: "submission", Required: true, Status: "pending", Notes: "Match validated data exactly"},
			{ID: 7, Task: "Generate benchmark report", Category: "submission", Required: true, Status: "pending", Notes: "Download for records"},
			{ID: 8, Task: "Submit to the buildings department", Category: "submission", Required: true, Status: "pending", Notes: fmt.Sprintf("Before May 1, %d", year)},
			{ID: 9, Task: "Save confirmation number", Category: "compliance_check", Required: true, Status: "pending", Notes: "Critical for audit trail"},
			{ID: 10, Task: "Archive all documentation", Category: "reporting", Required: true, Status: "pending", Notes: "Keep for 3 years minimum"},
		},
	}

	p.LogActivity("checklist", StatusCompleted, map[string]any{
		"building_id": buildingID,
		"year":        year,
	}, "")
	return checklist
}

// GenerateDocumentation builds the process documentation bundle.
func (p *ProcessEngineer) GenerateDocumentation(year int) ProcessDoc {
	if year == 0 {
		year = p.regulationYear
	}

	doc := ProcessDoc{
		Title:           "Energy Benchmarking Compliance Process",
		RegulationYear:  year,
		Purpose:         "Document the complete workflow for annual energy benchmarking compliance",
		Deadline:        "May 1st annually",
		GeneratedAt:     time.Now().Format(time.RFC3339),
		Workflow:        benchmarkWorkflow,
		ValidationRules: validationRules(),
		EdgeCases:       p.EdgeCases(),
		CommonErrors:    commonErrors(),
	}

	p.LogActivity("documentation", StatusCompleted, map[string]any{"year": year}, "")
	return doc
}

// AddEdgeCase records an unusual scenario encountered during submission
// review. Severity defaults to "medium" when empty.
func (p *ProcessEngineer) AddEdgeCase(scenario, processAffected, description, recommendedHandling, severity string) EdgeCase {
	if severity == "" {
		severity = "medium"
	}

	p.casesMu.Lock()
	ec := EdgeCase{
		ID:                  len(p.edgeCases) + 1,
		Scenario:            scenario,
		ProcessAffected:     processAffected,
		Description:         description,
		RecommendedHandling: recommendedHandling,
		Severity:            severity,
		DocumentedAt:        time.Now().Format(time.RFC3339),
		Status:              "documented",
	}
	p.edgeCases = append(p.edgeCases, ec)
	p.casesMu.Unlock()

	p.LogActivity("edge_case", StatusCompleted, map[string]any{"scenario": scenario, "severity": severity}, "")
	return ec
}

// EdgeCases returns the documented edge cases in insertion order.
func (p *ProcessEngineer) EdgeCases() []EdgeCase {
	p.casesMu.Lock()
	defer p.casesMu.Unlock()

	out := make([]EdgeCase, len(p.edgeCases))
	copy(out, p.edgeCases)
	return out
}

func validationRules() []ValidationRule {
	return []ValidationRule{
		{Rule: "RequiredColumns", Description: "Submissions must contain Date, kWh, Therms, and Demand columns", Severity: "critical"},
		{Rule: "NoDuplicateRows", Description: "Every reading row must be unique across all columns", Severity: "high"},
		{Rule: "ParseableDates", Description: "Every Date cell must parse as a calendar date", Severity: "high"},
		{Rule: "NoMissingMonths", Description: "The date sequence must cover every month between the earliest and latest reading", Severity: "medium"},
		{Rule: "CompleteNumericData", Description: "kWh, Therms, and Demand cells must be present and numeric", Severity: "high"},
		{Rule: "NonNegativeValues", Description: "Consumption values below the configured minimum are rejected", Severity: "high"},
		{Rule: "PlausibleMagnitudes", Description: "Values far above the configured maximum or far from the column median are flagged for review", Severity: "warning"},
	}
}

func commonErrors() []CommonError {
	return []CommonError{
		{Error: "MissingColumns", Cause: "Export template omitted required columns", Resolution: "Re-export using the standard utility data template"},
		{Error: "MissingMonths", Cause: "Utility bills not collected for every month", Resolution: "Request missing statements from the utility provider"},
		{Error: "NonNumericValues", Cause: "Values entered with units or currency symbols", Resolution: "Strip symbols so cells contain plain numbers"},
		{Error: "DuplicateRows", Cause: "The same bill imported twice", Resolution: "De-duplicate source data before export"},
		{Error: "LateSubmission", Cause: "Submitted after the May 1st deadline", Resolution: "Schedule validation well before the filing window closes"},
	}
}
