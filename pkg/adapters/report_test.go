package adapters

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spartan-home-services/eagleeye/pkg/models/domain"
	"github.com/spartan-home-services/eagleeye/pkg/models/store"
)

func ptr(v float64) *float64 { return &v }

func TestMapProjectOverview(t *testing.T) {
	labels := []string{
		"Project Details", "Project Name", "Customer Name", "Street Address", "City",
		"State", "ZIP Code", "Created Date", "Status", "Property Type",
	}

	tests := []struct {
		name     string
		resp     *store.ProjectResponse
		expected []string
	}{
		{
			name: "fully populated",
			resp: &store.ProjectResponse{Project: &store.Project{
				Name:              "Smith Residence",
				CustomerFirstName: "Jane",
				CustomerLastName:  "Smith",
				Location: store.ProjectLocation{PropertyAddressComponents: store.AddressComponents{
					StreetAddress: "12 Oak St",
					City:          "Austin",
					Region:        "TX",
					PostalCode:    "78701",
				}},
				CreatedAt:   "2024-03-05T14:22:10.123Z",
				Status:      "active",
				ProjectType: "residential",
			}},
			expected: []string{
				"Information", "Smith Residence", "Jane Smith", "12 Oak St", "Austin",
				"TX", "78701", "March 05, 2024", "Active", "Residential",
			},
		},
		{
			name: "empty project falls back to defaults",
			resp: &store.ProjectResponse{Project: &store.Project{}},
			expected: []string{
				"Information", "N/A", "N/A", "N/A", "N/A",
				"N/A", "N/A", "N/A", "N/A", "N/A",
			},
		},
		{
			name: "only last name and unparseable date",
			resp: &store.ProjectResponse{Project: &store.Project{
				CustomerLastName: "Smith",
				CreatedAt:        "last tuesday",
				Status:           "SOLD",
			}},
			expected: []string{
				"Information", "N/A", "Smith", "N/A", "N/A",
				"N/A", "N/A", "last tuesday", "Sold", "N/A",
			},
		},
		{
			name: "underscored status and property type",
			resp: &store.ProjectResponse{Project: &store.Project{
				Status:      "in_progress",
				ProjectType: "multi-family home",
			}},
			expected: []string{
				"Information", "N/A", "N/A", "N/A", "N/A",
				"N/A", "N/A", "N/A", "In_Progress", "Multi-Family Home",
			},
		},
		{
			name: "offset timestamp",
			resp: &store.ProjectResponse{Project: &store.Project{
				CreatedAt: "2023-11-30T23:59:59+05:00",
			}},
			expected: []string{
				"Information", "N/A", "N/A", "N/A", "N/A",
				"N/A", "N/A", "November 30, 2023", "N/A", "N/A",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, ok := MapProjectOverview(tt.resp)
			require.True(t, ok)
			require.Len(t, rows, 10)

			for i, row := range rows {
				require.Len(t, row, 2)
				assert.Equal(t, labels[i], row[0])
				assert.Equal(t, tt.expected[i], row[1], "row %q", row[0])
			}
		})
	}
}

func TestMapProjectOverview_MissingProject(t *testing.T) {
	rows, ok := MapProjectOverview(nil)
	assert.False(t, ok)
	assert.Nil(t, rows)

	var resp store.ProjectResponse
	require.NoError(t, json.Unmarshal([]byte(`{"projects": []}`), &resp))
	rows, ok = MapProjectOverview(&resp)
	assert.False(t, ok)
	assert.Nil(t, rows)
}

func TestMapDesignMetrics(t *testing.T) {
	tests := []struct {
		name     string
		summary  domain.DesignSummary
		expected domain.ReportTable
	}{
		{
			name: "complete design",
			summary: domain.DesignSummary{
				SystemSizeWatts:     6000,
				AnnualProductionKWh: 8456.7,
				BillOfMaterials: map[string]domain.Component{
					domain.ComponentModules:        {Name: "REC Alpha 400", Quantity: ptr(15)},
					domain.ComponentMicroinverters: {Name: "IQ8+", Quantity: ptr(15)},
				},
				Arrays: []domain.Array{{SolarAccessAnnual: 93.46}, {SolarAccessAnnual: 50}},
			},
			expected: domain.ReportTable{
				{"Metric", "Value"},
				{"System Size", "6.00 kW"},
				{"Annual Production", "8,457 kWh"},
				{"Number of Panels", "15"},
				{"Panel Model", "REC Alpha 400"},
				{"Inverter Model", "IQ8+"},
				{"Solar Access", "93.5%"},
			},
		},
		{
			name:    "empty design",
			summary: domain.DesignSummary{},
			expected: domain.ReportTable{
				{"Metric", "Value"},
				{"System Size", "0.00 kW"},
				{"Annual Production", "0 kWh"},
				{"Number of Panels", "N/A"},
				{"Panel Model", "N/A"},
				{"Inverter Model", "N/A"},
				{"Solar Access", "N/A"},
			},
		},
		{
			name: "zero solar access is not available",
			summary: domain.DesignSummary{
				SystemSizeWatts:     7250,
				AnnualProductionKWh: 1234567,
				Arrays:              []domain.Array{{SolarAccessAnnual: 0}},
			},
			expected: domain.ReportTable{
				{"Metric", "Value"},
				{"System Size", "7.25 kW"},
				{"Annual Production", "1,234,567 kWh"},
				{"Number of Panels", "N/A"},
				{"Panel Model", "N/A"},
				{"Inverter Model", "N/A"},
				{"Solar Access", "N/A"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapDesignMetrics(tt.summary))
		})
	}
}

func TestMapFinancials(t *testing.T) {
	tests := []struct {
		name         string
		price        decimal.Decimal
		systemSizeKW float64
		expected     domain.ReportTable
	}{
		{
			name:         "price per watt",
			price:        decimal.NewFromInt(1000),
			systemSizeKW: 4,
			expected: domain.ReportTable{
				{"Item", "Amount"},
				{"System Price", "$1,000.00"},
				{"Price per Watt", "$0.25/W"},
				{"Federal Tax Credit", "$300.00"},
				{"Net System Cost", "$700.00"},
			},
		},
		{
			name:         "zero system size",
			price:        decimal.NewFromInt(1000),
			systemSizeKW: 0,
			expected: domain.ReportTable{
				{"Item", "Amount"},
				{"System Price", "$1,000.00"},
				{"Price per Watt", "N/A"},
				{"Federal Tax Credit", "$300.00"},
				{"Net System Cost", "$700.00"},
			},
		},
		{
			name:         "zero price",
			price:        decimal.Zero,
			systemSizeKW: 6,
			expected: domain.ReportTable{
				{"Item", "Amount"},
				{"System Price", "$0.00"},
				{"Price per Watt", "N/A"},
				{"Federal Tax Credit", "$0.00"},
				{"Net System Cost", "$0.00"},
			},
		},
		{
			name:         "half cent rounds to even",
			price:        decimal.RequireFromString("0.125"),
			systemSizeKW: 0,
			expected: domain.ReportTable{
				{"Item", "Amount"},
				{"System Price", "$0.12"},
				{"Price per Watt", "N/A"},
				{"Federal Tax Credit", "$0.04"},
				{"Net System Cost", "$0.09"},
			},
		},
		{
			name:         "large price",
			price:        decimal.RequireFromString("24567.89"),
			systemSizeKW: 8.4,
			expected: domain.ReportTable{
				{"Item", "Amount"},
				{"System Price", "$24,567.89"},
				{"Price per Watt", "$2.92/W"},
				{"Federal Tax Credit", "$7,370.37"},
				{"Net System Cost", "$17,197.52"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MapFinancials(tt.price, tt.systemSizeKW))
		})
	}
}
