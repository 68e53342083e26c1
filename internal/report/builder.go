package report

import (
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// Builder normalizes raw scan records into render-ready report models.
type Builder struct {
	logger hclog.Logger
}

func NewBuilder(logger hclog.Logger) *Builder {
	return &Builder{logger: logger}
}

// BuildFile reads a scan record from path and builds its report model.
func (b *Builder) BuildFile(path string) (*ReportModel, error) {
	raw, err := ReadRecord(path)
	if err != nil {
		return nil, err
	}
	return b.Build(raw)
}

// ReadRecord decodes a scan record file into its loosely typed form. Numbers
// stay json.Number so score validation can distinguish numeric from not.
func ReadRecord(path string) (RawScanRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scan record %q: %w", path, err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.UseNumber()

	var raw RawScanRecord
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode scan record %q: %w", path, err)
	}
	return raw, nil
}

// Build validates raw and produces the canonical model. Missing or malformed
// required fields return a *ValidationError; an unparsable timestamp is only
// a degradation and keeps the raw string.
func (b *Builder) Build(raw RawScanRecord) (*ReportModel, error) {
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return nil, newValidationError(field, "is missing")
		}
	}

	rawURL, ok := raw["url"].(string)
	if !ok || rawURL == "" {
		return nil, newValidationError("url", "must be a non-empty string")
	}
	generatedAt, ok := raw["generatedAt"].(string)
	if !ok {
		return nil, newValidationError("generatedAt", "must be a string")
	}
	rating, ok := raw["overallRating"].(string)
	if !ok {
		return nil, newValidationError("overallRating", "must be a string")
	}

	overallScore, err := scoreValue(raw["overallScore"], "overallScore")
	if err != nil {
		return nil, err
	}

	model := &ReportModel{
		URL:           rawURL,
		Domain:        ExtractDomain(rawURL),
		GeneratedAt:   generatedAt,
		FormattedDate: b.formatDate(generatedAt),
		OverallScore:  overallScore,
		OverallRating: rating,
		OverallGrade:  Grade(overallScore),
		Modules:       map[string]Module{},
		ModuleGrade:   map[string]string{},
		Extra:         map[string]interface{}{},
	}

	if modules, ok := raw["modules"].(map[string]interface{}); ok {
		for key, value := range modules {
			module, err := parseModule(key, value)
			if err != nil {
				return nil, err
			}
			model.Modules[key] = module
			model.ModuleGrade[key] = Grade(module.Summary.Score)
		}
	}

	model.TopRecommendations = itemList(raw["topRecommendations"])
	model.ReportID, _ = raw["reportId"].(string)
	model.SchemaVersion, _ = raw["schemaVersion"].(string)
	model.IndustryContext, _ = raw["industryContext"].(map[string]interface{})
	model.Viewports, _ = raw["viewports"].([]interface{})

	known := map[string]bool{
		"url": true, "generatedAt": true, "overallScore": true, "overallRating": true,
		"modules": true, "topRecommendations": true, "reportId": true,
		"schemaVersion": true, "industryContext": true, "viewports": true,
	}
	for key, value := range raw {
		if !known[key] {
			model.Extra[key] = value
		}
	}

	b.logger.Info("parsed scan record", "url", model.URL, "score", model.OverallScore, "grade", model.OverallGrade)
	return model, nil
}

// parseModule extracts one module result. The scanner nests findings as
// {"recommendations": {"items": [...]}, "issues": {"items": [...]}}.
func parseModule(key string, value interface{}) (Module, error) {
	var module Module
	raw, ok := value.(map[string]interface{})
	if !ok {
		return module, nil
	}

	if summary, ok := raw["summary"].(map[string]interface{}); ok {
		if scoreRaw, ok := summary["score"]; ok {
			score, err := scoreValue(scoreRaw, fmt.Sprintf("modules.%s.summary.score", key))
			if err != nil {
				return module, err
			}
			module.Summary.Score = score
		}
		module.Summary.Rating, _ = summary["rating"].(string)
	}

	module.Recommendations = itemList(raw["recommendations"])
	module.Issues = itemList(raw["issues"])
	return module, nil
}

// itemList flattens a {"items": [...]} wrapper into its free-text entries.
func itemList(value interface{}) []string {
	wrapper, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	entries, ok := wrapper["items"].([]interface{})
	if !ok {
		return nil
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch v := entry.(type) {
		case string:
			items = append(items, v)
		default:
			items = append(items, fmt.Sprintf("%v", v))
		}
	}
	return items
}

// scoreValue accepts the numeric JSON forms of a score and enforces [0,100].
func scoreValue(value interface{}, field string) (int, error) {
	var score float64
	switch v := value.(type) {
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, newValidationError(field, "must be numeric")
		}
		score = parsed
	case float64:
		score = v
	case int:
		score = float64(v)
	default:
		return 0, newValidationError(field, "must be numeric")
	}

	if score < 0 || score > 100 {
		return 0, newValidationError(field, "must be within [0,100]")
	}
	return int(math.Round(score)), nil
}

// ExtractDomain returns the host of rawURL without scheme, a leading "www."
// or a trailing slash.
func ExtractDomain(rawURL string) string {
	host := rawURL
	if parsed, err := url.Parse(rawURL); err == nil && parsed.Host != "" {
		host = parsed.Host
	} else {
		if idx := strings.Index(host, "://"); idx >= 0 {
			host = host[idx+3:]
		}
		if idx := strings.IndexByte(host, '/'); idx >= 0 {
			host = host[:idx]
		}
	}
	host = strings.TrimSuffix(host, "/")
	return strings.TrimPrefix(host, "www.")
}

// formatDate renders a strict RFC 3339 timestamp for humans. Failures keep
// the raw string; a broken timestamp is not worth losing the report over.
func (b *Builder) formatDate(generatedAt string) string {
	parsed, err := time.Parse(time.RFC3339, generatedAt)
	if err != nil {
		b.logger.Debug("keeping unparsable timestamp verbatim", "generatedAt", generatedAt, "error", err)
		return generatedAt
	}
	return parsed.Format("January 02, 2006")
}
