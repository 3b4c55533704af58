package reportgen

import (
	"encoding/json"
	"errors"
	"math"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Chris-nyan/waste-reporting-platform-sub000/models"
)

// Platform-wide KPI coefficients, in kg CO2e per kg recycled unless noted.
const (
	emissionsAvoidedPerKg  = 2.5
	recyclingEmissionPerKg = 0.5
	logisticsPerKm         = 0.1
	carsPerTonneNet        = 0.22
	treesPerTonne          = 17
	landfillM3PerTonne     = 3

	// TODO: derive the diversion rate from tracked intake volumes once
	// clients report total waste generated; kept constant for parity with
	// reports already issued.
	diversionRatePercent = 85
)

var ErrClientNotFound = errors.New("client not found")

type KPIs struct {
	TotalWeightRecycled   float64
	TotalWasteGenerated   float64
	EmissionsAvoided      float64
	LogisticsEmissions    float64
	RecyclingEmissions    float64
	NetImpact             float64
	DiversionRate         float64
	CarsOffRoadEquivalent float64
	TreesSaved            float64
	LandfillSpaceSaved    float64
}

// Totals are the aggregates KPI math runs on.
type Totals struct {
	RecycledKg      float64
	TotalDistanceKm float64
}

// ComputeKPIs is a pure function of the aggregates: identical inputs
// always produce identical, 2-decimal-rounded KPI values.
func ComputeKPIs(t Totals) KPIs {
	avoided := t.RecycledKg * emissionsAvoidedPerKg
	logistics := t.TotalDistanceKm * logisticsPerKm
	recycling := t.RecycledKg * recyclingEmissionPerKg
	net := avoided - (logistics + recycling)

	return KPIs{
		TotalWeightRecycled:   round2(t.RecycledKg),
		TotalWasteGenerated:   round2(t.RecycledKg / (diversionRatePercent / 100.0)),
		EmissionsAvoided:      round2(avoided),
		LogisticsEmissions:    round2(logistics),
		RecyclingEmissions:    round2(recycling),
		NetImpact:             round2(net),
		DiversionRate:         diversionRatePercent,
		CarsOffRoadEquivalent: round2(net / 1000 * carsPerTonneNet),
		TreesSaved:            round2(t.RecycledKg / 1000 * treesPerTonne),
		LandfillSpaceSaved:    round2(t.RecycledKg / 1000 * landfillM3PerTonne),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// activityEntries selects the client's waste entries that had recycling
// activity inside the window, restricted to the included waste types. The
// same selection backs both generation and the itemized log on retrieval,
// so the two views of "activity in period" always agree.
func activityEntries(db *gorm.DB, tenantID, clientID uint, start, end time.Time, wasteTypeIDs []uint) ([]models.WasteData, error) {
	q := db.Model(&models.WasteData{}).
		Joins("JOIN clients ON clients.id = waste_data.client_id AND clients.deleted_at IS NULL").
		Where("clients.tenant_id = ? AND waste_data.client_id = ?", tenantID, clientID).
		Where(`EXISTS (
			SELECT 1 FROM recycling_processes rp
			WHERE rp.waste_data_id = waste_data.id
			  AND rp.deleted_at IS NULL
			  AND rp.recycled_date BETWEEN ? AND ?)`, start, end).
		Preload("WasteType").
		Preload("RecyclingProcesses", "recycled_date BETWEEN ? AND ?", start, end)
	if len(wasteTypeIDs) > 0 {
		q = q.Where("waste_data.waste_type_id IN ?", wasteTypeIDs)
	}

	var entries []models.WasteData
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func totalsFrom(entries []models.WasteData) Totals {
	var t Totals
	for _, e := range entries {
		for _, p := range e.RecyclingProcesses {
			t.RecycledKg += p.QuantityRecycled
		}
		t.TotalDistanceKm += e.DistanceKm
	}
	return t
}

type Question struct {
	Text   string
	Answer string
}

type Input struct {
	ClientID     uint
	Title        string
	StartDate    time.Time
	EndDate      time.Time
	WasteTypeIDs []uint
	Questions    []Question
}

// Generate aggregates the period's recycling activity, derives KPIs and
// persists the report with its nested questions in one create.
func Generate(db *gorm.DB, tenantID uint, in Input) (*models.Report, error) {
	var client models.Client
	err := db.Where("id = ? AND tenant_id = ?", in.ClientID, tenantID).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	entries, err := activityEntries(db, tenantID, in.ClientID, in.StartDate, in.EndDate, in.WasteTypeIDs)
	if err != nil {
		return nil, err
	}
	kpis := ComputeKPIs(totalsFrom(entries))

	ids, err := json.Marshal(in.WasteTypeIDs)
	if err != nil {
		return nil, err
	}

	report := models.Report{
		TenantID:              tenantID,
		ClientID:              in.ClientID,
		Title:                 in.Title,
		StartDate:             in.StartDate,
		EndDate:               in.EndDate,
		WasteTypeIDs:          datatypes.JSON(ids),
		TotalWeightRecycled:   kpis.TotalWeightRecycled,
		TotalWasteGenerated:   kpis.TotalWasteGenerated,
		EmissionsAvoided:      kpis.EmissionsAvoided,
		LogisticsEmissions:    kpis.LogisticsEmissions,
		RecyclingEmissions:    kpis.RecyclingEmissions,
		NetImpact:             kpis.NetImpact,
		DiversionRate:         kpis.DiversionRate,
		CarsOffRoadEquivalent: kpis.CarsOffRoadEquivalent,
		TreesSaved:            kpis.TreesSaved,
		LandfillSpaceSaved:    kpis.LandfillSpaceSaved,
	}
	for _, q := range in.Questions {
		report.Questions = append(report.Questions, models.ReportQuestion{
			QuestionText: q.Text,
			AnswerText:   q.Answer,
		})
	}

	if err := db.Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

// ItemizedLog rebuilds the recycling log for a stored report's window.
// KPIs are never recomputed here; only the appendix rows are refreshed.
func ItemizedLog(db *gorm.DB, report *models.Report) ([]models.WasteData, error) {
	var ids []uint
	if len(report.WasteTypeIDs) > 0 {
		if err := json.Unmarshal(report.WasteTypeIDs, &ids); err != nil {
			return nil, err
		}
	}
	return activityEntries(db, report.TenantID, report.ClientID, report.StartDate, report.EndDate, ids)
}
