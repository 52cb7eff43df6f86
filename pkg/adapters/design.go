package adapters

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/spartan-home-services/eagleeye/pkg/models/api"
	"github.com/spartan-home-services/eagleeye/pkg/models/domain"
	"github.com/spartan-home-services/eagleeye/pkg/models/store"
)

func MapStoreProjectToDomain(p store.Project) domain.ProjectRecord {
	addr := p.Location.PropertyAddressComponents
	return domain.ProjectRecord{
		ID:                p.ID,
		Name:              p.Name,
		CustomerFirstName: p.CustomerFirstName,
		CustomerLastName:  p.CustomerLastName,
		Street:            addr.StreetAddress,
		City:              addr.City,
		Region:            addr.Region,
		PostalCode:        addr.PostalCode,
		CreatedAt:         p.CreatedAt,
		Status:            p.Status,
		PropertyType:      p.ProjectType,
	}
}

// MapStoreDesignToDomain flattens a design summary. When the bill of materials
// lists a component type more than once the last entry wins.
func MapStoreDesignToDomain(resp *store.DesignSummaryResponse) domain.DesignSummary {
	if resp == nil {
		return domain.DesignSummary{BillOfMaterials: map[string]domain.Component{}}
	}
	d := resp.Design

	bom := make(map[string]domain.Component, len(d.BillOfMaterials))
	for _, item := range d.BillOfMaterials {
		bom[item.ComponentType] = domain.Component{
			Name:     item.Name,
			Quantity: item.Quantity,
		}
	}

	arrays := make([]domain.Array, 0, len(d.Arrays))
	for _, a := range d.Arrays {
		arrays = append(arrays, domain.Array{SolarAccessAnnual: a.Shading.SolarAccess.Annual})
	}

	return domain.DesignSummary{
		SystemSizeWatts:     d.SystemSizeSTC,
		AnnualProductionKWh: d.EnergyProduction.Annual,
		BillOfMaterials:     bom,
		Arrays:              arrays,
	}
}

// MapStorePricingToDomain returns nil when the pricing object is missing or
// empty. A populated object without a usable system_price maps to a zero price.
func MapStorePricingToDomain(resp *store.DesignPricingResponse) *domain.PricingInfo {
	if resp == nil || len(resp.Pricing) == 0 {
		return nil
	}

	info := &domain.PricingInfo{SystemPrice: decimal.Zero}
	if raw, ok := resp.Pricing["system_price"]; ok {
		var price decimal.NullDecimal
		if err := json.Unmarshal(raw, &price); err == nil && price.Valid {
			info.SystemPrice = price.Decimal
		}
	}
	return info
}

func MapStoreAssetsToDomain(resp *store.DesignAssetsResponse) []domain.Asset {
	if resp == nil {
		return nil
	}
	assets := make([]domain.Asset, 0, len(resp.Assets))
	for _, a := range resp.Assets {
		assets = append(assets, domain.Asset{
			Type:      a.Type,
			AssetType: a.AssetType,
			URL:       a.URL,
		})
	}
	return assets
}

func MapResultDomainToApi(r domain.Result) api.ReportResult {
	return api.ReportResult{
		RunID:          r.RunID,
		DesignID:       r.DesignID,
		State:          string(r.State),
		Success:        r.OK(),
		Failure:        string(r.Failure),
		Reason:         r.Reason,
		File:           r.Location,
		Mirrors:        r.Mirrors,
		Pages:          r.Pages,
		ImagesEmbedded: r.ImagesEmbedded,
	}
}
