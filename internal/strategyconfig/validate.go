package strategyconfig

import (
	"fmt"
	"strings"
)

// Validate checks a loaded profile for internal consistency.
func Validate(p *Profile) error {
	var problems []string

	if p.Meta.ProfileID == "" {
		problems = append(problems, "meta.profile_id is required")
	}
	if !p.Universe.Discover && len(p.Universe.Symbols) == 0 {
		problems = append(problems, "universe must either discover or list symbols")
	}
	if p.Universe.Limit < 0 {
		problems = append(problems, "universe.limit must not be negative")
	}
	if p.Scan.TopN <= 0 {
		problems = append(problems, "scan.top_n must be positive")
	}
	if p.Scan.Workers <= 0 {
		problems = append(problems, "scan.workers must be positive")
	}
	if p.Scan.HistoryDays < 0 {
		problems = append(problems, "scan.history_days must not be negative")
	}
	if p.Scan.Schedule == "" {
		problems = append(problems, "scan.schedule is required")
	}
	if p.Cache.QuoteTTL < 0 {
		problems = append(problems, "cache.quote_ttl must not be negative")
	}

	for _, symbol := range p.Universe.Symbols {
		if strings.TrimSpace(symbol) == "" {
			problems = append(problems, "universe.symbols must not contain blank entries")
			break
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid scan profile: %s", strings.Join(problems, "; "))
	}
	return nil
}
