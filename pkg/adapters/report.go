package adapters

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spartan-home-services/eagleeye/pkg/models/domain"
	"github.com/spartan-home-services/eagleeye/pkg/models/store"
)

const (
	NotAvailable = "N/A"

	createdDateLayout = "January 02, 2006"
)

var (
	federalCreditRate = decimal.NewFromFloat(0.30)
	netCostRate       = decimal.NewFromFloat(0.70)

	isoLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02",
	}
)

// MapProjectOverview builds the project overview table. It reports false when
// the payload carries no "project" object, meaning the section is omitted.
func MapProjectOverview(resp *store.ProjectResponse) (domain.ReportTable, bool) {
	if resp == nil || resp.Project == nil {
		return nil, false
	}
	p := MapStoreProjectToDomain(*resp.Project)

	customer := strings.TrimSpace(p.CustomerFirstName + " " + p.CustomerLastName)

	return domain.ReportTable{
		{"Project Details", "Information"},
		{"Project Name", orNA(p.Name)},
		{"Customer Name", orNA(customer)},
		{"Street Address", orNA(p.Street)},
		{"City", orNA(p.City)},
		{"State", orNA(p.Region)},
		{"ZIP Code", orNA(p.PostalCode)},
		{"Created Date", formatCreatedDate(p.CreatedAt)},
		{"Status", titleCase(orNA(p.Status))},
		{"Property Type", titleCase(orNA(p.PropertyType))},
	}, true
}

// MapDesignMetrics builds the system design details table.
//
// Solar access of exactly zero is rendered as "N/A", the same as a missing
// value: the upstream payload does not distinguish the two.
func MapDesignMetrics(summary domain.DesignSummary) domain.ReportTable {
	p := message.NewPrinter(language.English)

	modules, hasModules := summary.BillOfMaterials[domain.ComponentModules]
	inverters, hasInverters := summary.BillOfMaterials[domain.ComponentMicroinverters]

	panels, panelModel, inverterModel := NotAvailable, NotAvailable, NotAvailable
	if hasModules {
		if modules.Quantity != nil {
			panels = strconv.FormatFloat(*modules.Quantity, 'f', -1, 64)
		}
		panelModel = orNA(modules.Name)
	}
	if hasInverters {
		inverterModel = orNA(inverters.Name)
	}

	solarAccess := NotAvailable
	if len(summary.Arrays) > 0 && summary.Arrays[0].SolarAccessAnnual != 0 {
		solarAccess = strconv.FormatFloat(summary.Arrays[0].SolarAccessAnnual, 'f', 1, 64) + "%"
	}

	return domain.ReportTable{
		{"Metric", "Value"},
		{"System Size", strconv.FormatFloat(summary.SystemSizeKW(), 'f', 2, 64) + " kW"},
		{"Annual Production", p.Sprintf("%.0f", summary.AnnualProductionKWh) + " kWh"},
		{"Number of Panels", panels},
		{"Panel Model", panelModel},
		{"Inverter Model", inverterModel},
		{"Solar Access", solarAccess},
	}
}

// MapFinancials builds the financial overview table. Price per watt is only
// computed when both the price and the system size are positive.
func MapFinancials(price decimal.Decimal, systemSizeKW float64) domain.ReportTable {
	pricePerWatt := NotAvailable
	if price.IsPositive() && systemSizeKW > 0 {
		watts := decimal.NewFromFloat(systemSizeKW).Mul(decimal.NewFromInt(1000))
		pricePerWatt = formatCurrency(price.Div(watts)) + "/W"
	}

	return domain.ReportTable{
		{"Item", "Amount"},
		{"System Price", formatCurrency(price)},
		{"Price per Watt", pricePerWatt},
		{"Federal Tax Credit", formatCurrency(price.Mul(federalCreditRate))},
		{"Net System Cost", formatCurrency(price.Mul(netCostRate))},
	}
}

func formatCurrency(amount decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	return "$" + p.Sprintf("%.2f", amount.RoundBank(2).InexactFloat64())
}

func formatCreatedDate(raw string) string {
	if raw == "" {
		return NotAvailable
	}
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(createdDateLayout)
		}
	}
	return raw
}

// titleCase capitalizes every run of letters, so "in_progress" becomes
// "In_Progress".
func titleCase(s string) string {
	caser := cases.Title(language.English)

	var out strings.Builder
	start := -1
	for i, r := range s {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out.WriteString(caser.String(s[start:i]))
			start = -1
		}
		out.WriteRune(r)
	}
	if start >= 0 {
		out.WriteString(caser.String(s[start:]))
	}
	return out.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
