// Package weights defines the scoring weight vector and the named strategy
// presets that substitute for it.
package weights

import "strings"

// Component names recognized by the scoring engine. A vector may carry other
// keys; they participate in normalization but contribute nothing to scores.
const (
	Urgency    = "urgency"
	Importance = "importance"
	Effort     = "effort"
	Dependency = "dependency"
)

// Vector maps component names to non-negative weights.
type Vector map[string]float64

// Default returns the fixed fallback vector used when the caller supplies
// nothing usable.
func Default() Vector {
	return Vector{Urgency: 0.4, Importance: 0.3, Effort: 0.2, Dependency: 0.1}
}

// Clone returns a copy of the vector.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Sum returns the total of all weights.
func (v Vector) Sum() float64 {
	total := 0.0
	for _, val := range v {
		total += val
	}
	return total
}

// Get returns the weight for a component, or zero when absent.
func (v Vector) Get(name string) float64 {
	return v[name]
}

// Normalized returns a copy scaled to sum to 1.0. An empty vector or one
// summing to zero or less is replaced by the default vector first.
func (v Vector) Normalized() Vector {
	base := v
	total := v.Sum()
	if len(v) == 0 || total <= 0 {
		base = Default()
		total = base.Sum()
	}
	out := make(Vector, len(base))
	for k, val := range base {
		out[k] = val / total
	}
	return out
}

// presets are the named strategy vectors selectable by callers.
var presets = map[string]Vector{
	"smart":    Default(),
	"fastest":  {Urgency: 0.2, Importance: 0.2, Effort: 0.5, Dependency: 0.1},
	"impact":   {Urgency: 0.2, Importance: 0.6, Effort: 0.1, Dependency: 0.1},
	"deadline": {Urgency: 0.7, Importance: 0.15, Effort: 0.1, Dependency: 0.05},
}

// Preset looks up a strategy vector by name, case-insensitively. It reports
// false for unknown names so callers can fall back to supplied or learned
// weights.
func Preset(name string) (Vector, bool) {
	v, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return v.Clone(), true
}

// PresetNames returns the recognized strategy names.
func PresetNames() []string {
	return []string{"smart", "fastest", "impact", "deadline"}
}
