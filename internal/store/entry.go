package store

import "time"

// entry pairs a value with its optional expiration instant.
// expireAt is Unix nanoseconds; 0 means the entry never expires.
type entry struct {
	val      *value
	expireAt int64
}

func (e *entry) expired(now int64) bool {
	return e.expireAt != 0 && now >= e.expireAt
}

// remainingTTL reports the lifetime left at instant now.
// Returns (0, false) when no expiration is set, (-1, true) when already
// expired, otherwise the remaining time rounded up to whole seconds,
// never less than 1 for a live entry.
func (e *entry) remainingTTL(now int64) (int64, bool) {
	if e.expireAt == 0 {
		return 0, false
	}
	if now >= e.expireAt {
		return -1, true
	}
	secs := (e.expireAt - now + int64(time.Second) - 1) / int64(time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs, true
}
