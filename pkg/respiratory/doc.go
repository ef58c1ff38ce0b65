// Package respiratory computes the Phoenix respiratory sub-score (0–3) from
// index-aligned oxygenation and respiratory-support series.
//
// score.go holds the per-element rule (Score) and the vectorised forms
// (Compute and Series). Every index is scored independently:
//
//	pf = imv*((PF<100)+(PF<200)) + (imv||support)*(PF<400)
//	sf = imv*((SF<148)+(SF<220)) + (imv||support)*(SF<292)
//	score = max(pf, sf)
//
// Thresholds are strict. A NaN ratio fails every comparison and contributes
// nothing; it is not an error. The only error is a LengthMismatchError,
// reported before any element is scored.
//
// Indicator series may be bool or numeric. Numeric values are set when
// non-zero; NaN is treated as not set.
package respiratory
