package cache

import (
	"math"
	"reflect"
	"time"
)

// Interval is a calendar interval. Its length in seconds is measured by
// applying it to the Unix epoch, so Months and Years follow the calendar
// starting at 1970-01-01 UTC.
type Interval struct {
	Years, Months, Days     int
	Hours, Minutes, Seconds int
}

// Duration returns the interval length measured from the Unix epoch.
func (iv Interval) Duration() time.Duration {
	epoch := time.Unix(0, 0).UTC()
	end := epoch.AddDate(iv.Years, iv.Months, iv.Days).
		Add(time.Duration(iv.Hours)*time.Hour +
			time.Duration(iv.Minutes)*time.Minute +
			time.Duration(iv.Seconds)*time.Second)
	return end.Sub(epoch)
}

// resolveTTL turns a ttl argument into whole seconds. set is false when ttl
// is nil, meaning the entry never expires.
func resolveTTL(op string, ttl any) (seconds int64, set bool, err error) {
	switch v := ttl.(type) {
	case nil:
		return 0, false, nil
	case time.Duration:
		return int64(v / time.Second), true, nil
	case Interval:
		return int64(v.Duration() / time.Second), true, nil
	case *Interval:
		if v == nil {
			return 0, false, nil
		}
		return int64(v.Duration() / time.Second), true, nil
	}
	rv := reflect.ValueOf(ttl)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<62 {
			u = 1 << 62
		}
		return int64(u), true, nil
	}
	return 0, false, invalid(op, "ttl", "want nil, integer seconds, time.Duration or Interval, got %T", ttl)
}

// expiryAt returns nowUnix+seconds, saturating at math.MaxInt64.
func expiryAt(nowUnix, seconds int64) int64 {
	if seconds > math.MaxInt64-nowUnix {
		return math.MaxInt64
	}
	return nowUnix + seconds
}
