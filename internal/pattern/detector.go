// Package pattern flags locations showing a recurring complaint pattern
// that warrants proactive intervention.
package pattern

import (
	"fmt"
	"sync"
	"time"

	"github.com/dhruva-pgrs/triage/internal/domain"
	"github.com/dhruva-pgrs/triage/internal/logging"
)

const (
	windowDays     = 30
	alertThreshold = 5
)

type entry struct {
	at         time.Time
	department string
}

// Detector keeps a per-location sliding window of complaints. An exact
// count over the trailing window, no decay weighting.
type Detector struct {
	mu      sync.Mutex
	history map[string][]entry
	now     func() time.Time
	logger  logging.Logger
}

// NewDetector creates a pattern detector.
func NewDetector(logger logging.Logger) *Detector {
	return &Detector{
		history: make(map[string][]entry),
		now:     time.Now,
		logger:  logger,
	}
}

// RecordAndCheck appends this complaint to the location's history, prunes
// entries older than the trailing window, and returns one alert for every
// department with at least the threshold count. Several departments at the
// same location can trigger in the same call.
func (d *Detector) RecordAndCheck(location, department string) []domain.Alert {
	now := d.now()
	cutoff := now.AddDate(0, 0, -windowDays)

	d.mu.Lock()
	recent := d.history[location][:0]
	for _, e := range d.history[location] {
		if e.at.After(cutoff) {
			recent = append(recent, e)
		}
	}
	recent = append(recent, entry{at: now, department: department})
	d.history[location] = recent

	counts := make(map[string]int)
	for _, e := range recent {
		counts[e.department]++
	}
	d.mu.Unlock()

	var alerts []domain.Alert
	for dept, count := range counts {
		if dept == "" || count < alertThreshold {
			continue
		}
		alerts = append(alerts, domain.Alert{
			Type:           domain.AlertTypeAreaPattern,
			Location:       location,
			Department:     dept,
			Count:          count,
			WindowDays:     windowDays,
			Recommendation: fmt.Sprintf("Infrastructure review needed for %s in %s", dept, location),
		})
		d.logger.Info("area pattern detected",
			logging.String("location", location),
			logging.String("department", dept),
			logging.Int("count", count))
	}
	return alerts
}
