package store

import "encoding/json"

// ProjectResponse is the body of GET /tenants/{tenant}/projects/{id}.
type ProjectResponse struct {
	Project *Project `json:"project"`
}

type Project struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	CustomerFirstName string          `json:"customer_first_name"`
	CustomerLastName  string          `json:"customer_last_name"`
	Location          ProjectLocation `json:"location"`
	CreatedAt         string          `json:"created_at"`
	Status            string          `json:"status"`
	ProjectType       string          `json:"project_type"`
}

type ProjectLocation struct {
	PropertyAddressComponents AddressComponents `json:"property_address_components"`
}

type AddressComponents struct {
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	Region        string `json:"region"`
	PostalCode    string `json:"postal_code"`
}

// DesignSummaryResponse is the body of GET /tenants/{tenant}/designs/{id}/summary.
type DesignSummaryResponse struct {
	Design Design `json:"design"`
}

type Design struct {
	SystemSizeSTC    float64          `json:"system_size_stc"` // watts
	EnergyProduction EnergyProduction `json:"energy_production"`
	BillOfMaterials  []BOMItem        `json:"bill_of_materials"`
	Arrays           []Array          `json:"arrays"`
}

type EnergyProduction struct {
	Annual float64 `json:"annual"`
}

type BOMItem struct {
	ComponentType string   `json:"component_type"`
	Name          string   `json:"name"`
	Quantity      *float64 `json:"quantity"`
}

type Array struct {
	Shading Shading `json:"shading"`
}

type Shading struct {
	SolarAccess SolarAccess `json:"solar_access"`
}

type SolarAccess struct {
	Annual float64 `json:"annual"`
}

// DesignPricingResponse is the body of GET /tenants/{tenant}/designs/{id}/pricing.
// Pricing keeps the raw members so that an empty object can be told apart
// from a populated one.
type DesignPricingResponse struct {
	Pricing map[string]json.RawMessage `json:"pricing"`
}

// DesignAssetsResponse is the body of GET /tenants/{tenant}/designs/{id}/assets.
type DesignAssetsResponse struct {
	Assets []Asset `json:"assets"`
}

type Asset struct {
	Type      string `json:"type"`
	AssetType string `json:"asset_type"`
	URL       string `json:"url"`
}
