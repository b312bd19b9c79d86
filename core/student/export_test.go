package student

import "time"

// SetNow freezes the service clock until the returned func is called.
func SetNow(now time.Time) (restore func()) {
	nowFunc = func() time.Time { return now }
	return func() { nowFunc = time.Now }
}
