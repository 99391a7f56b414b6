package scoring

import (
	"strings"
	"sync"
	"time"

	"github.com/dotcommander/regatta/internal/model"
)

// Variant selects the concrete pipeline behavior for a scoring system.
type Variant int

const (
	// VariantLowPoint is the Appendix-A style low point system: place
	// equals points, lowest total wins.
	VariantLowPoint Variant = iota
	// VariantHighPointPercent scores fleet size minus place plus one and
	// ranks by percentage of possible points.
	VariantHighPointPercent
	// VariantCoxSprague is the table-driven high-is-better percent system.
	VariantCoxSprague
	// VariantTopX sums the competitor's best X scores with no discards.
	VariantTopX
	// VariantPWA is low point with the PWA tie-break chain.
	VariantPWA
)

func (v Variant) String() string {
	switch v {
	case VariantHighPointPercent:
		return "high-point-percentage"
	case VariantCoxSprague:
		return "cox-sprague"
	case VariantTopX:
		return "top-x"
	case VariantPWA:
		return "pwa"
	default:
		return "low-point"
	}
}

// percent reports whether the variant totals as earned/possible.
func (v Variant) percent() bool {
	return v == VariantHighPointPercent || v == VariantCoxSprague
}

// rootCacheTTL bounds how long a resolved root variant is reused before
// the inheritance chain is walked again.
const rootCacheTTL = 20 * time.Second

type cachedVariant struct {
	variant Variant
	expires time.Time
}

var (
	rootCacheMu sync.Mutex
	rootCache   = map[string]cachedVariant{}
)

// ResolveVariant walks the scoring-system inheritance chain to its root
// and selects the pipeline variant from the root's name. Results are
// cached briefly per system name; the cache lives outside the pure
// computation core and expires on its own.
func ResolveVariant(sys *model.ScoringSystem) Variant {
	rootCacheMu.Lock()
	defer rootCacheMu.Unlock()
	now := time.Now()
	if c, ok := rootCache[sys.Name]; ok && now.Before(c.expires) {
		return c.variant
	}
	v := variantForName(sys.Root().Name)
	rootCache[sys.Name] = cachedVariant{variant: v, expires: now.Add(rootCacheTTL)}
	return v
}

// variantForName matches substrings of the root system name. The
// string-matching dispatch mirrors how systems are named in federation
// configuration; unmatched names fall back to Appendix-A low point.
func variantForName(name string) Variant {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "cox") && strings.Contains(n, "sprague"):
		return VariantCoxSprague
	case strings.Contains(n, "high point percentage"):
		return VariantHighPointPercent
	case strings.Contains(n, "top"), strings.Contains(n, "best"):
		return VariantTopX
	case strings.Contains(n, "pwa"), strings.Contains(n, "windsurf"):
		return VariantPWA
	default:
		return VariantLowPoint
	}
}

// firstPlaceValue returns the low-point "first place is X" override: an
// explicit configured constant wins, a root name mentioning "zero" maps
// first place to zero, anything else leaves first place as-is.
func firstPlaceValue(sys *model.ScoringSystem) *float64 {
	for s := sys; s != nil; s = s.Parent {
		if s.FirstPlaceValue != nil {
			return s.FirstPlaceValue
		}
	}
	if strings.Contains(strings.ToLower(sys.Root().Name), "zero") {
		zero := 0.0
		return &zero
	}
	return nil
}
