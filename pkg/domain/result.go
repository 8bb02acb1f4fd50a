package domain

// Severity ranks how urgent a diagnosis is.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Result is the terminal diagnosis payload. The engine treats it as opaque.
type Result struct {
	Diagnosis          string   `json:"diagnosis" yaml:"diagnosis" mapstructure:"diagnosis" jsonschema:"required,minLength=1"`
	Severity           Severity `json:"severity" yaml:"severity" mapstructure:"severity" jsonschema:"required,enum=low,enum=medium,enum=high,enum=critical"`
	Causes             []string `json:"causes,omitempty" yaml:"causes,omitempty" mapstructure:"causes"`
	Solutions          []string `json:"solutions,omitempty" yaml:"solutions,omitempty" mapstructure:"solutions"`
	EstimatedCost      string   `json:"estimated_cost,omitempty" yaml:"estimated_cost,omitempty" mapstructure:"estimated_cost"`
	EstimatedTime      string   `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty" mapstructure:"estimated_time"`
	DIYFriendly        bool     `json:"diy_friendly,omitempty" yaml:"diy_friendly,omitempty" mapstructure:"diy_friendly"`
	RequiresTechnician bool     `json:"requires_technician,omitempty" yaml:"requires_technician,omitempty" mapstructure:"requires_technician"`
	SafetyWarning      string   `json:"safety_warning,omitempty" yaml:"safety_warning,omitempty" mapstructure:"safety_warning"`
}

// Clone returns a copy that shares no slices with r.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Causes = append([]string(nil), r.Causes...)
	c.Solutions = append([]string(nil), r.Solutions...)
	return &c
}
