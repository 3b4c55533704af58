package models

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	StatusPartiallyRecycled = "PARTIALLY_RECYCLED"
	StatusFullyRecycled     = "FULLY_RECYCLED"

	// Tolerance applied to float comparisons on recycled quantities.
	QuantityTolerance = 0.001
)

// Static waste taxonomy, seeded at boot and shared by all tenants.

type WasteCategory struct {
	gorm.Model
	Name  string      `gorm:"uniqueIndex" json:"name"`
	Types []WasteType `json:"types,omitempty"`
}

type WasteType struct {
	gorm.Model
	WasteCategoryID uint   `gorm:"index" json:"waste_category_id"`
	Name            string `json:"name"`
	// Informational kg CO2e avoided per kg recycled; KPI math uses
	// fixed platform-wide coefficients, not this field.
	CO2PerKg float64 `json:"co2_per_kg"`
}

// WasteData is one logged pickup-and-recycling record. Quantities are
// stored in kilograms; normalization happens once at creation.
type WasteData struct {
	gorm.Model
	ClientID              uint       `gorm:"index" json:"client_id"`
	WasteTypeID           uint       `gorm:"index" json:"waste_type_id"`
	RecyclingTechnologyID *uint      `json:"recycling_technology_id"`
	FacilityID            *uint      `json:"facility_id"`
	PickupLocationID      *uint      `json:"pickup_location_id"`
	VehicleTypeID         *uint      `json:"vehicle_type_id"`
	Quantity              float64    `json:"quantity"`
	RecycledQuantity      float64    `json:"recycled_quantity"`
	Status                string     `json:"status"`
	PickupDate            time.Time  `json:"pickup_date"`
	RecycledDate          *time.Time `json:"recycled_date"`
	DistanceKm            float64    `json:"distance_km"`
	WasteImages           datatypes.JSON `json:"waste_images"`
	RecyclingImages       datatypes.JSON `json:"recycling_images"`

	Client              Client               `json:"client,omitempty"`
	WasteType           WasteType            `json:"waste_type,omitempty"`
	RecyclingTechnology *RecyclingTechnology `json:"recycling_technology,omitempty"`
	RecyclingProcesses  []RecyclingProcess   `json:"recycling_processes,omitempty"`
}

// RecyclingProcess is one partial-recycling event against a waste entry.
// Creating one increments the parent's RecycledQuantity atomically.
type RecyclingProcess struct {
	gorm.Model
	WasteDataID      uint      `gorm:"index" json:"waste_data_id"`
	QuantityRecycled float64   `json:"quantity_recycled"`
	RecycledDate     time.Time `json:"recycled_date"`
}

var unitToKg = map[string]float64{
	"KG": 1,
	"G":  0.001,
	"T":  1000,
	"LB": 0.453592,
}

// NormalizeToKg converts a quantity in the given unit to kilograms.
func NormalizeToKg(quantity float64, unit string) (float64, error) {
	factor, ok := unitToKg[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported unit %q", unit)
	}
	return quantity * factor, nil
}

// StatusFor derives the recycling status from quantities, within tolerance.
func StatusFor(quantity, recycled float64) string {
	if recycled >= quantity-QuantityTolerance {
		return StatusFullyRecycled
	}
	return StatusPartiallyRecycled
}
