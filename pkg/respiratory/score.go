package respiratory

import "math"

// PF ratio (PaO2/FiO2) thresholds. A ratio scores against a threshold only
// when strictly below it.
const (
	PFSevere   = 100.0
	PFModerate = 200.0
	PFMild     = 400.0
)

// SF ratio (SpO2/FiO2) thresholds, the non-invasive counterparts of the PF
// thresholds.
const (
	SFSevere   = 148.0
	SFModerate = 220.0
	SFMild     = 292.0
)

// MaxScore is the highest respiratory sub-score.
const MaxScore = 3

// Indicator is the set of element types accepted for the imv and
// respiratory-support series.
type Indicator interface {
	bool | int | int32 | int64 | float32 | float64
}

// IsSet reports whether an indicator value means "condition holds": true for
// bool, non-zero for numbers. NaN is not set.
func IsSet[I Indicator](v I) bool {
	switch x := any(v).(type) {
	case bool:
		return x
	case int:
		return x != 0
	case int32:
		return x != 0
	case int64:
		return x != 0
	case float32:
		return x != 0 && !math.IsNaN(float64(x))
	case float64:
		return x != 0 && !math.IsNaN(x)
	}
	return false
}

// Score returns the respiratory sub-score for a single observation.
func Score(pfRatio, sfRatio float64, onIMV, onSupport bool) int {
	imv := b2i(onIMV)
	support := b2i(onIMV || onSupport)

	pf := imv*(b2i(pfRatio < PFSevere)+b2i(pfRatio < PFModerate)) + support*b2i(pfRatio < PFMild)
	sf := imv*(b2i(sfRatio < SFSevere)+b2i(sfRatio < SFModerate)) + support*b2i(sfRatio < SFMild)

	return max(pf, sf)
}

// Compute scores every index of the four aligned series and returns a new
// slice of the same length. Inputs are not modified.
//
// A *LengthMismatchError is returned, with a nil slice, when the series
// lengths differ.
func Compute[I Indicator](pfRatio, sfRatio []float64, imv, respSupport []I) ([]int, error) {
	n, err := checkLengths(len(pfRatio), len(sfRatio), len(imv), len(respSupport))
	if err != nil {
		return nil, err
	}

	out := make([]int, n)
	for i := range out {
		out[i] = Score(pfRatio[i], sfRatio[i], IsSet(imv[i]), IsSet(respSupport[i]))
	}
	return out, nil
}

// Series bundles the four observation series for a cohort. Indicator series
// hold any non-zero value for "set".
type Series struct {
	PFRatio     []float64
	SFRatio     []float64
	IMV         []float64
	RespSupport []float64
}

// Validate returns the common length of the series or a *LengthMismatchError.
func (s Series) Validate() (int, error) {
	return checkLengths(len(s.PFRatio), len(s.SFRatio), len(s.IMV), len(s.RespSupport))
}

// Compute is Compute applied to the series.
func (s Series) Compute() ([]int, error) {
	return Compute(s.PFRatio, s.SFRatio, s.IMV, s.RespSupport)
}

// ScoreRange writes the scores for indices [lo, hi) into dst[lo:hi].
// The caller must have validated the series and sized dst to its length.
func (s Series) ScoreRange(dst []int, lo, hi int) {
	for i := lo; i < hi; i++ {
		dst[i] = Score(s.PFRatio[i], s.SFRatio[i], IsSet(s.IMV[i]), IsSet(s.RespSupport[i]))
	}
}

// Indicators converts an indicator series to the 0/1 float form Series uses.
func Indicators[I Indicator](v []I) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(b2i(IsSet(x)))
	}
	return out
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
