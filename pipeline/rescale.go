package pipeline

import (
	"time"

	"github.com/asticode/go-astiav"
)

// rescaleTS converts a timestamp between time bases using integer
// arithmetic, passing astiav.NoPtsValue through untouched.
func rescaleTS(ts int64, from, to astiav.Rational) int64 {
	if ts == astiav.NoPtsValue {
		return ts
	}
	if from.Num() == 0 || from.Den() == 0 || to.Num() == 0 || to.Den() == 0 {
		return ts
	}
	num := int64(from.Num()) * int64(to.Den())
	den := int64(from.Den()) * int64(to.Num())
	if ts >= 0 {
		return (ts*num + den/2) / den
	}
	return (ts*num - den/2) / den
}

func tsToDuration(ts int64, tb astiav.Rational) time.Duration {
	if ts == astiav.NoPtsValue || tb.Den() == 0 {
		return 0
	}
	return time.Duration(float64(ts) * tb.Float64() * float64(time.Second))
}
