package timedataset

import (
	"errors"
	"math"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	ErrCannotInferFreq = errors.New("cannot infer frequency from time slice")
	ErrNonPositiveFreq = errors.New("frequency must be positive")
	ErrNoWorkdays      = errors.New("no workdays reachable with frequency")
)

// maxWorkdaySkips bounds the search for workdays so a frequency that always lands on a
// weekend cannot loop forever.
const maxWorkdaySkips = 370

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// EstimateFreq returns the most common spacing between consecutive points. Ties go to the
// smaller spacing.
func (t TimeSlice) EstimateFreq() (time.Duration, error) {
	if len(t) < 2 {
		return 0, ErrCannotInferFreq
	}

	frequencies := make(map[time.Duration]int)
	for i := 1; i < len(t); i++ {
		delta := t[i].Sub(t[i-1])
		frequencies[delta] += 1
	}

	var maxCnt int
	maxDelta := time.Duration(math.MaxInt64)

	for delta, cnt := range frequencies {
		if cnt > maxCnt || (cnt == maxCnt && delta < maxDelta) {
			maxCnt = cnt
			maxDelta = delta
		}
	}
	return maxDelta, nil
}

// Extend generates n time points following the end of the slice spaced by freq
func (t TimeSlice) Extend(n int, freq time.Duration) ([]time.Time, error) {
	if freq <= 0 {
		return nil, ErrNonPositiveFreq
	}
	end := t.EndTime()
	out := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, end.Add(time.Duration(i)*freq))
	}
	return out, nil
}

// NewUSBusinessCalendar returns a calendar treating weekends and US federal holidays as
// non-working days.
func NewUSBusinessCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)
	return c
}

// ExtendWorkdays generates n time points following the end of the slice, stepping by freq
// and skipping any point that is not a workday in the business calendar. Intended for
// daily data where demand is only observed on business days.
func (t TimeSlice) ExtendWorkdays(n int, freq time.Duration, c *cal.BusinessCalendar) ([]time.Time, error) {
	if freq <= 0 {
		return nil, ErrNonPositiveFreq
	}
	if c == nil {
		c = NewUSBusinessCalendar()
	}

	out := make([]time.Time, 0, n)
	next := t.EndTime()
	var skipped int
	for len(out) < n {
		next = next.Add(freq)
		if !c.IsWorkday(next) {
			skipped++
			if skipped > maxWorkdaySkips {
				return nil, ErrNoWorkdays
			}
			continue
		}
		skipped = 0
		out = append(out, next)
	}
	return out, nil
}
