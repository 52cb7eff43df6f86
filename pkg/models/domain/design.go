package domain

import "github.com/shopspring/decimal"

const (
	ComponentModules        = "modules"
	ComponentMicroinverters = "microinverters"

	AssetTypeLayoutImage   = "layout_image"
	AssetTypeCADScreenshot = "CAD Screenshot"
)

// ProjectRecord is the subset of an Aurora project shown in the overview table.
type ProjectRecord struct {
	ID                string
	Name              string
	CustomerFirstName string
	CustomerLastName  string
	Street            string
	City              string
	Region            string
	PostalCode        string
	CreatedAt         string // ISO-8601 as received
	Status            string
	PropertyType      string
}

type Component struct {
	Name     string
	Quantity *float64
}

type Array struct {
	SolarAccessAnnual float64 // percent
}

type DesignSummary struct {
	SystemSizeWatts     float64
	AnnualProductionKWh float64
	BillOfMaterials     map[string]Component // keyed by component type
	Arrays              []Array
}

// SystemSizeKW converts the STC size reported in watts to kilowatts.
func (d DesignSummary) SystemSizeKW() float64 {
	return d.SystemSizeWatts / 1000
}

type PricingInfo struct {
	SystemPrice decimal.Decimal
}

type Asset struct {
	Type      string
	AssetType string
	URL       string
}

// Eligible reports whether the asset is a layout image or a CAD screenshot.
func (a Asset) Eligible() bool {
	return a.Type == AssetTypeLayoutImage || a.AssetType == AssetTypeCADScreenshot
}

// Label is used for logging which asset is being processed.
func (a Asset) Label() string {
	if a.Type != "" {
		return a.Type
	}
	return a.AssetType
}
