package report

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metrics summarizes a dataset's shape and quality. The values are supplied
// by the caller; nothing here computes statistics.
type Metrics struct {
	Filename        string  `yaml:"filename" json:"filename"`
	Rows            int     `yaml:"rows" json:"rows"`
	Columns         int     `yaml:"columns" json:"columns"`
	NumericVars     int     `yaml:"numeric_vars" json:"numeric_vars"`
	CategoricalVars int     `yaml:"categorical_vars" json:"categorical_vars"`
	BooleanVars     int     `yaml:"boolean_vars" json:"boolean_vars"`
	QualityScore    float64 `yaml:"quality_score" json:"quality_score"`
	MissingPct      float64 `yaml:"missing_pct" json:"missing_pct"`
	OutliersCount   int     `yaml:"outliers_count" json:"outliers_count"`
	ConstantVars    int     `yaml:"constant_vars" json:"constant_vars"`
	AnalysesCount   int     `yaml:"analyses_count" json:"analyses_count"`
}

// Stats is the raw statistics record. It is carried along with a request but
// the layout never reads it.
type Stats map[string]any

// MissingFilename stands in for an absent filename.
const MissingFilename = "N/A"

// MetricsFromMap reads a loosely typed record. Absent or unparsable fields
// fall back to zero (or MissingFilename); this never fails.
func MetricsFromMap(m map[string]any) Metrics {
	out := Metrics{
		Filename:        stringField(m, "filename"),
		Rows:            intField(m, "rows"),
		Columns:         intField(m, "columns"),
		NumericVars:     intField(m, "numeric_vars"),
		CategoricalVars: intField(m, "categorical_vars"),
		BooleanVars:     intField(m, "boolean_vars"),
		QualityScore:    floatField(m, "quality_score"),
		MissingPct:      floatField(m, "missing_pct"),
		OutliersCount:   intField(m, "outliers_count"),
		ConstantVars:    intField(m, "constant_vars"),
		AnalysesCount:   intField(m, "analyses_count"),
	}
	if out.Filename == "" {
		out.Filename = MissingFilename
	}
	return out
}

func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func floatField(m map[string]any, key string) float64 {
	var f float64
	switch v := m[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v, ",", ".")), 64)
		if err != nil {
			return 0
		}
		f = p
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return int(math.Round(floatField(m, key)))
}

// LoadMetrics reads a YAML or JSON metrics file.
func LoadMetrics(path string) (Metrics, error) {
	raw, err := loadMap(path)
	if err != nil {
		return Metrics{}, err
	}
	return MetricsFromMap(raw), nil
}

// LoadStats reads a YAML or JSON statistics file.
func LoadStats(path string) (Stats, error) {
	raw, err := loadMap(path)
	if err != nil {
		return nil, err
	}
	return Stats(raw), nil
}

func loadMap(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	raw := map[string]any{}
	// JSON is a subset of YAML, one decoder serves both.
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return raw, nil
}
