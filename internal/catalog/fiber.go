package catalog

import "errors"

// ErrEmptyFiberContent indicates dominant-fiber resolution was attempted on
// a yarn with no fiber data at all.
var ErrEmptyFiberContent = errors.New("no fiber content")

// DominantFiber determines the single most prevalent fiber in a breakdown.
// Shares without a usable percentage are skipped; among the rest the highest
// percentage wins, with ties resolved in favor of the first share reaching
// the maximum. When no share carries a percentage at all, the first share's
// fiber name is used as a fallback. Fiber names are returned title-cased.
func DominantFiber(shares []FiberShare) (string, error) {
	if len(shares) == 0 {
		return "", ErrEmptyFiberContent
	}

	best := -1
	fiber := ""
	for _, sh := range shares {
		if sh.Percent == nil {
			continue
		}
		if p := *sh.Percent; p > best {
			best = p
			fiber = NormalizeName(sh.Fiber)
		}
	}
	if best < 0 {
		return NormalizeName(shares[0].Fiber), nil
	}
	return fiber, nil
}
