package ledger

import "time"

// WorkingDays counts Monday to Friday dates in the inclusive range
// [start, end]. Holidays are not excluded. It returns 0 when start is
// after end.
func WorkingDays(start, end time.Time) int {
	s := dateOnly(start)
	e := dateOnly(end)

	count := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Debit takes days of leaveType from b. Loss Of Pay always succeeds and
// grows its counter. Any other type fails, leaving b untouched, when it is
// absent from the balance or holds fewer than days.
func Debit(b Balance, leaveType string, days int) (Balance, bool) {
	out := b.Clone()

	if leaveType == LossOfPay {
		out[LossOfPay] += days
		return out, true
	}

	current, ok := out[leaveType]
	if !ok || current < days {
		return b.Clone(), false
	}
	out[leaveType] = current - days
	return out, true
}

// ClampObserver is told when a credit would have produced a negative count.
type ClampObserver func(leaveType string, unclamped int)

// Credit reverses a previous Debit. Loss Of Pay shrinks, every other type
// grows. A negative result is stored as 0 and reported to observers.
func Credit(b Balance, leaveType string, days int, observers ...ClampObserver) Balance {
	out := b.Clone()

	next := out[leaveType] + days
	if leaveType == LossOfPay {
		next = out[leaveType] - days
	}

	if next < 0 {
		for _, observe := range observers {
			if observe != nil {
				observe(leaveType, next)
			}
		}
		next = 0
	}
	out[leaveType] = next
	return out
}
