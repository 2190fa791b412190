package domain

import (
	"encoding/json"
	"fmt"
)

// DistressLevel is the ordinal urgency classification of a grievance.
// Ordering matters: NORMAL < MEDIUM < HIGH < CRITICAL.
type DistressLevel int

const (
	DistressNormal DistressLevel = iota
	DistressMedium
	DistressHigh
	DistressCritical
)

var distressNames = map[DistressLevel]string{
	DistressNormal:   "NORMAL",
	DistressMedium:   "MEDIUM",
	DistressHigh:     "HIGH",
	DistressCritical: "CRITICAL",
}

// String returns the wire name of the level.
func (l DistressLevel) String() string {
	if name, ok := distressNames[l]; ok {
		return name
	}
	return "NORMAL"
}

// ParseDistressLevel converts a wire name back to a level.
func ParseDistressLevel(s string) (DistressLevel, error) {
	for level, name := range distressNames {
		if name == s {
			return level, nil
		}
	}
	return DistressNormal, fmt.Errorf("unknown distress level %q", s)
}

// MarshalJSON encodes the level as its wire name.
func (l DistressLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a wire name into the level.
func (l *DistressLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, err := ParseDistressLevel(s)
	if err != nil {
		return err
	}
	*l = level
	return nil
}

// DistressSignal is a matched distress keyword and the severity tier it
// belongs to.
type DistressSignal struct {
	Keyword string        `json:"keyword"`
	Level   DistressLevel `json:"level"`
}

// DistressResult is the output of the distress stage.
type DistressResult struct {
	Level      DistressLevel    `json:"distress_level"`
	Confidence float64          `json:"confidence"`
	Signals    []DistressSignal `json:"signals"`
	Method     string           `json:"method"`
}

// Distress fusion method tags.
const (
	DistressMethodKeywordOverride = "keyword_override"
	DistressMethodMLClassifier    = "ml_classifier"
	DistressMethodKeywordFallback = "keyword_fallback"
	DistressMethodMLDefault       = "ml_default"
)
