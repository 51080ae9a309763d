package formatter

import (
	"github.com/jacoelho/jsondot/internal/results"
)

// Formatter renders search summaries. Each call writes the given summaries
// in order; watch mode calls it once per run.
type Formatter interface {
	Format(summaries ...*results.Summary) error
}
