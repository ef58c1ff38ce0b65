package respiratory

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is matched by every *LengthMismatchError via errors.Is.
var ErrLengthMismatch = errors.New("respiratory: input series lengths differ")

// LengthMismatchError reports the lengths of four series that were expected
// to be index-aligned.
type LengthMismatchError struct {
	PFRatio     int
	SFRatio     int
	IMV         int
	RespSupport int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("respiratory: input series lengths differ: pf_ratio=%d sf_ratio=%d imv=%d resp_support=%d",
		e.PFRatio, e.SFRatio, e.IMV, e.RespSupport)
}

// Is lets errors.Is(err, ErrLengthMismatch) match.
func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// checkLengths returns the common length, or a *LengthMismatchError.
func checkLengths(pf, sf, imv, support int) (int, error) {
	if pf != sf || pf != imv || pf != support {
		return 0, &LengthMismatchError{PFRatio: pf, SFRatio: sf, IMV: imv, RespSupport: support}
	}
	return pf, nil
}
