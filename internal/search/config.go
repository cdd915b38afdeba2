package search

import (
	"errors"
	"fmt"
)

// Mode selects which of a query's matches are reported.
type Mode int

const (
	// ModeAll reports every match within the budget.
	ModeAll Mode = iota

	// ModeBest reports one match with the fewest errors.
	ModeBest

	// ModeAllBest reports every match tying for the fewest errors.
	ModeAllBest

	// ModeStrata reports every match with at most best+Strata errors.
	ModeStrata
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeBest:
		return "best"
	case ModeAllBest:
		return "all_best"
	case ModeStrata:
		return "strata"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode converts the wire/CLI spelling of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "all":
		return ModeAll, nil
	case "best":
		return ModeBest, nil
	case "all_best":
		return ModeAllBest, nil
	case "strata":
		return ModeStrata, nil
	}
	return ModeAll, fmt.Errorf("unknown search mode %q", s)
}

// Output selects the form reported matches take.
type Output int

const (
	// OutputPositions resolves hits to deduplicated text positions.
	OutputPositions Output = iota

	// OutputCursors returns the raw cursor snapshots.
	OutputCursors
)

// ErrorRates expresses the error budget as fractions of the query length;
// each fraction is floor-cast to a count per query.
type ErrorRates struct {
	Total        float64 `json:"total"`
	Substitution float64 `json:"substitution"`
	Insertion    float64 `json:"insertion"`
	Deletion     float64 `json:"deletion"`
}

// Hit is one reported match of one query.
type Hit struct {
	// QueryID is the index of the query within the request.
	QueryID int

	// Cursor is the snapshot at the matching affix-tree node.
	Cursor Cursor
}

// Config bundles every recognized search option. The zero value searches
// exactly (no errors), reports all matches, and returns positions.
type Config struct {
	// MaxError is the absolute error budget across the whole query.
	MaxError *Budget `json:"max_error,omitempty"`

	// MaxErrorRate is the budget as fractions of the query length.
	// Mutually exclusive with MaxError.
	MaxErrorRate *ErrorRates `json:"max_error_rate,omitempty"`

	Mode Mode `json:"mode"`

	// Strata widens ModeStrata's reporting band above the best error
	// count.
	Strata int `json:"strata"`

	Output Output `json:"output"`

	// OnHit, when set, receives every hit instead of the result buffers.
	// Returning true stops the current query's search.
	OnHit func(Hit) bool `json:"-"`
}

var ErrConflictingBudget = errors.New("search: max_error and max_error_rate are mutually exclusive")

// budgetFor resolves the configured budget for one query length.
func (c *Config) budgetFor(n int) (Budget, error) {
	if c.MaxError != nil && c.MaxErrorRate != nil {
		return Budget{}, ErrConflictingBudget
	}
	if c.MaxError != nil {
		return *c.MaxError, nil
	}
	if c.MaxErrorRate != nil {
		r := c.MaxErrorRate
		return Budget{
			Total:        int(r.Total * float64(n)),
			Substitution: int(r.Substitution * float64(n)),
			Insertion:    int(r.Insertion * float64(n)),
			Deletion:     int(r.Deletion * float64(n)),
		}, nil
	}
	return Budget{}, nil
}
