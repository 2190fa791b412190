// Package knowledge holds the curated tables the triage stages run on:
// the department label set, the keyword routing table, the per-severity
// distress keyword lists, the risk-pattern table and the acknowledgment
// templates. Tables are loaded once at process start and treated as
// immutable afterwards.
package knowledge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dhruva-pgrs/triage/internal/domain"
)

// DepartmentKeyword maps one curated keyword to a department with a stated
// base confidence.
type DepartmentKeyword struct {
	Keyword    string  `yaml:"keyword"`
	Department string  `yaml:"department"`
	Confidence float64 `yaml:"confidence"`
}

// RiskPattern is one named mishandling pattern: any trigger keyword in the
// text marks the lapse with the base probability. Departments, when set,
// restricts the pattern to cases routed to those departments.
type RiskPattern struct {
	Name        string   `yaml:"name"`
	Keywords    []string `yaml:"keywords"`
	Lapse       string   `yaml:"lapse"`
	BaseRisk    float64  `yaml:"base_risk"`
	Departments []string `yaml:"departments,omitempty"`
}

// AppliesTo reports whether the pattern is applicable for a department.
// Unrestricted patterns apply everywhere.
func (p *RiskPattern) AppliesTo(department string) bool {
	if len(p.Departments) == 0 {
		return true
	}
	for _, d := range p.Departments {
		if d == department {
			return true
		}
	}
	return false
}

// DistressKeywords holds the per-severity keyword lists. NORMAL has no
// list: it is the absence of signals.
type DistressKeywords struct {
	Critical []string `yaml:"critical"`
	High     []string `yaml:"high"`
	Medium   []string `yaml:"medium"`
}

// Base is the full knowledge base consumed by the pipeline.
type Base struct {
	Departments        []string                         `yaml:"departments"`
	DepartmentKeywords []DepartmentKeyword              `yaml:"department_keywords"`
	Distress           DistressKeywords                 `yaml:"distress_keywords"`
	RiskPatterns       []RiskPattern                    `yaml:"risk_patterns"`
	Acknowledgments    map[string]domain.Acknowledgment `yaml:"acknowledgments"`
}

// Load reads a YAML knowledge base from path and validates it.
func Load(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}
	var b Base
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("validate knowledge base: %w", err)
	}
	return &b, nil
}

// Validate checks the tables once at load time so the per-call hot path
// never re-validates.
func (b *Base) Validate() error {
	if len(b.Departments) == 0 {
		return fmt.Errorf("no departments defined")
	}
	known := make(map[string]bool, len(b.Departments))
	for _, d := range b.Departments {
		known[d] = true
	}

	for _, kw := range b.DepartmentKeywords {
		if kw.Keyword == "" {
			return fmt.Errorf("department keyword with empty keyword")
		}
		if !known[kw.Department] {
			return fmt.Errorf("keyword %q routes to unknown department %q", kw.Keyword, kw.Department)
		}
		if kw.Confidence < 0 || kw.Confidence > 1 {
			return fmt.Errorf("keyword %q confidence %v outside [0,1]", kw.Keyword, kw.Confidence)
		}
	}

	for _, p := range b.RiskPatterns {
		if p.Lapse == "" {
			return fmt.Errorf("risk pattern %q has no lapse label", p.Name)
		}
		if len(p.Keywords) == 0 {
			return fmt.Errorf("risk pattern %q has no trigger keywords", p.Name)
		}
		if p.BaseRisk < 0 || p.BaseRisk > 1 {
			return fmt.Errorf("risk pattern %q base risk %v outside [0,1]", p.Name, p.BaseRisk)
		}
		for _, d := range p.Departments {
			if !known[d] {
				return fmt.Errorf("risk pattern %q restricted to unknown department %q", p.Name, d)
			}
		}
	}
	return nil
}

// Acknowledgment returns the template for a distress level, falling back
// to the NORMAL template.
func (b *Base) Acknowledgment(level domain.DistressLevel) *domain.Acknowledgment {
	if ack, ok := b.Acknowledgments[level.String()]; ok {
		return &ack
	}
	if ack, ok := b.Acknowledgments[domain.DistressNormal.String()]; ok {
		return &ack
	}
	return nil
}
