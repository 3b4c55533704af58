package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Report is an immutable KPI snapshot for a client over a period. KPIs are
// computed once at generation; only the itemized recycling log shown in the
// document appendix is refreshed on retrieval.
type Report struct {
	gorm.Model
	TenantID  uint      `gorm:"index" json:"tenant_id"`
	ClientID  uint      `gorm:"index" json:"client_id"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	// Waste type ids included in the report, stored as a JSON array.
	WasteTypeIDs datatypes.JSON `json:"waste_type_ids"`

	TotalWeightRecycled   float64 `json:"total_weight_recycled"`
	TotalWasteGenerated   float64 `json:"total_waste_generated"`
	EmissionsAvoided      float64 `json:"emissions_avoided"`
	LogisticsEmissions    float64 `json:"logistics_emissions"`
	RecyclingEmissions    float64 `json:"recycling_emissions"`
	NetImpact             float64 `json:"net_impact"`
	DiversionRate         float64 `json:"diversion_rate"`
	CarsOffRoadEquivalent float64 `json:"cars_off_road_equivalent"`
	TreesSaved            float64 `json:"trees_saved"`
	LandfillSpaceSaved    float64 `json:"landfill_space_saved"`

	Client    Client           `json:"client,omitempty"`
	Questions []ReportQuestion `json:"questions,omitempty"`
}

type ReportQuestion struct {
	gorm.Model
	ReportID     uint   `gorm:"index" json:"report_id"`
	QuestionText string `json:"question_text"`
	AnswerText   string `json:"answer_text"`
}

// ReportQuestionTemplate powers the report wizard's question picker.
type ReportQuestionTemplate struct {
	gorm.Model
	Text string `json:"text"`
}
