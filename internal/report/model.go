package report

// RawScanRecord is the loosely typed JSON document produced by the scanner.
// Only the four required fields are interpreted here; everything else passes
// through to the template untouched.
type RawScanRecord map[string]interface{}

// Required top-level fields of a RawScanRecord.
var requiredFields = []string{"url", "generatedAt", "overallScore", "overallRating"}

// ModuleSummary is the scored outcome of a single audit module.
type ModuleSummary struct {
	Score  int
	Rating string
}

// Module holds one audit module's summary and its free-text findings.
type Module struct {
	Summary         ModuleSummary
	Recommendations []string
	Issues          []string
}

// ReportModel is the canonical, render-ready form of a scan record.
type ReportModel struct {
	URL           string
	Domain        string
	GeneratedAt   string
	FormattedDate string

	OverallScore  int
	OverallRating string
	OverallGrade  string

	Modules     map[string]Module
	ModuleGrade map[string]string

	TopRecommendations []string

	ReportID        string
	SchemaVersion   string
	IndustryContext map[string]interface{}
	Viewports       []interface{}

	// Extra carries unrecognized top-level keys through to the template.
	Extra map[string]interface{}
}
