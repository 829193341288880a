// Package extract turns the raw text and tables of one factsheet PDF into
// structured records: one IndexRecord per document and zero or more sector
// weights. Every field is independently optional; a pattern that does not
// match leaves its field absent and never affects sibling fields.
package extract

// IndexRecord is one row of the aggregate index table. The csv tags define
// the stable output column order; optional numerics are pointers so an
// absent value serializes as an empty cell rather than 0.
type IndexRecord struct {
	IndexName            string   `csv:"Indices Name"`
	SourceFilename       string   `csv:"Filename"`
	Methodology          string   `csv:"Methodology"`
	ConstituentsCount    *int     `csv:"No. of Constituents"`
	LaunchDate           string   `csv:"Launch Date"`
	BaseDate             string   `csv:"Base Date"`
	BaseValue            *float64 `csv:"Base Value"`
	CalcFrequency        string   `csv:"Calculation Frequency"`
	RebalancingFrequency string   `csv:"Index Rebalancing"`
	PriceReturnQTD       *float64 `csv:"Price Returns QTD"`
	PriceReturnYTD       *float64 `csv:"Price Returns YTD"`
	PriceReturn1Y        *float64 `csv:"Price Returns 1 year"`
	PriceReturn5Y        *float64 `csv:"Price Returns 5 years"`
	PriceReturnInception *float64 `csv:"Price Returns Since Inception"`
	TotalReturnQTD       *float64 `csv:"Total Returns QTD"`
	TotalReturnYTD       *float64 `csv:"Total Returns YTD"`
	TotalReturn1Y        *float64 `csv:"Total Returns 1 year"`
	TotalReturn5Y        *float64 `csv:"Total Returns 5 years"`
	TotalReturnInception *float64 `csv:"Total Returns Since Inception"`
	StdDev1Y             *float64 `csv:"Standard Deviation 1 year"`
	StdDev5Y             *float64 `csv:"Standard Deviation 5 year"`
	StdDevInception      *float64 `csv:"Standard Deviation Since Inception"`
	Beta1Y               *float64 `csv:"Beta (Nifty 50) 1 year"`
	Beta5Y               *float64 `csv:"Beta (Nifty 50) 5 years"`
	BetaInception        *float64 `csv:"Beta (Nifty 50) Since Inception"`
	PERatio              *float64 `csv:"P/E"`
	PBRatio              *float64 `csv:"P/B"`
	DividendYield        *float64 `csv:"Dividend Yield"`
}

// SectorRow is one (index, sector) weight pair discovered in a factsheet.
type SectorRow struct {
	IndexName      string
	SourceFilename string
	SectorName     string
	WeightPercent  float64
}

// SectorWeight is a sector weight before it is attached to a document.
type SectorWeight struct {
	Sector string
	Weight float64
}
