// Package store implements the in-memory data engine: typed values
// (string, hash, list), per-key lazy expiration, and a single-lock
// concurrency model. It performs no I/O and logs nothing; every operation
// returns a typed result to the caller.
package store

import (
	"fmt"
	"sync"
	"time"
)

const Version = "0.1.0"

// Store is a thread-safe mapping from key to entry. One mutex guards the
// whole map for the full duration of every operation, so all operations
// are linearizable with respect to each other. Share a Store by passing
// the *Store handle; all mutation goes through its methods.
type Store struct {
	mu   sync.Mutex
	data map[string]*entry
}

func NewStore() *Store {
	return &Store{
		data: make(map[string]*entry),
	}
}

// getLive returns the entry for key if it exists and has not expired.
// An expired entry encountered here is removed on the spot; no background
// process sweeps the map. Callers must hold s.mu.
func (s *Store) getLive(key string, now int64) (*entry, bool) {
	e, ok := s.data[key]
	if !ok {
		return nil, false
	}
	if e.expired(now) {
		delete(s.data, key)
		return nil, false
	}
	return e, true
}

// sweep removes every expired entry. Callers must hold s.mu.
func (s *Store) sweep(now int64) {
	for key, e := range s.data {
		if e.expired(now) {
			delete(s.data, key)
		}
	}
}

// Set stores value under key as a string with no expiration, replacing any
// previous entry regardless of its type.
func (s *Store) Set(key, val string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = &entry{val: newStringValue(val)}
}

// SetWithTTL stores value under key as a string expiring ttlSeconds from
// now. A ttl of 0 produces an entry that is already expired and will be
// removed lazily on the next touch.
func (s *Store) SetWithTTL(key, val string, ttlSeconds int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = &entry{
		val:      newStringValue(val),
		expireAt: time.Now().Add(time.Duration(ttlSeconds) * time.Second).UnixNano(),
	}
}

// Get returns the string stored under key. ok is false when the key is
// absent or expired (the expired entry is removed as a side effect).
// Returns a *WrongTypeError when the key holds a hash or a list.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.getLive(key, time.Now().UnixNano())
	if !ok {
		return "", false, nil
	}
	if e.val.kind != TypeString {
		return "", false, wrongType(key, e.val.kind, TypeString)
	}
	return e.val.str, true, nil
}

// Delete removes key regardless of its type. It returns a rendering of the
// removed value and true, or ("", false) when the key was absent. Deleting
// twice is safe; the second call reports absence.
func (s *Store) Delete(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.getLive(key, time.Now().UnixNano())
	if !ok {
		return "", false
	}
	delete(s.data, key)
	return e.val.describe(), true
}

// Exists reports whether key is present and not expired. An expired entry
// observed here is removed.
func (s *Store) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.getLive(key, time.Now().UnixNano())
	return ok
}

// TTL reports the remaining lifetime of key in whole seconds. ok is false
// when the key is absent or carries no expiration. An expired entry yields
// (-1, true) on the touch that observes it and is removed, so a subsequent
// call reports absence.
func (s *Store) TTL(key string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixNano()
	e, ok := s.data[key]
	if !ok {
		return 0, false
	}
	secs, has := e.remainingTTL(now)
	if !has {
		return 0, false
	}
	if secs == -1 {
		delete(s.data, key)
	}
	return secs, true
}

// Expire sets or refreshes the expiration of an existing key of any type.
// Returns false when the key is absent (or already expired).
func (s *Store) Expire(key string, ttlSeconds int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.getLive(key, time.Now().UnixNano())
	if !ok {
		return false
	}
	e.expireAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second).UnixNano()
	return true
}

// ListKeys returns every live key, sweeping out expired entries first.
func (s *Store) ListKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(time.Now().UnixNano())

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, key)
	}
	return keys
}

// Keys returns the live keys matching pattern, sweeping out expired
// entries first. See matchPattern for the pattern rules.
func (s *Store) Keys(pattern string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(time.Now().UnixNano())

	keys := make([]string, 0)
	for key := range s.data {
		if matchPattern(key, pattern) {
			keys = append(keys, key)
		}
	}
	return keys
}

// Count returns the number of live keys after a sweep.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(time.Now().UnixNano())
	return len(s.data)
}

// Clear removes every entry unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]*entry)
}

// Len reports the current map size without sweeping expired entries, for
// diagnostics that must stay cheap.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

// Info renders a diagnostic summary of the store.
func (s *Store) Info() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(time.Now().UnixNano())

	return fmt.Sprintf(
		"# Server\nmedusa_version:%s\n# Memory\nused_memory_entries:%d\n# Stats\ntotal_keys:%d\n",
		Version, len(s.data), len(s.data),
	)
}

// hashFor returns the live hash under key, creating an empty one when the
// key is absent and create is true. Callers must hold s.mu.
func (s *Store) hashFor(key string, create bool) (*value, error) {
	e, ok := s.getLive(key, time.Now().UnixNano())
	if !ok {
		if !create {
			return nil, nil
		}
		e = &entry{val: newHashValue()}
		s.data[key] = e
		return e.val, nil
	}
	if e.val.kind != TypeHash {
		return nil, wrongType(key, e.val.kind, TypeHash)
	}
	return e.val, nil
}

// HSet sets field to val in the hash under key, creating the hash when the
// key is absent. Returns true when the field was newly created, false when
// it overwrote an existing field.
func (s *Store) HSet(key, field, val string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.hashFor(key, true)
	if err != nil {
		return false, err
	}
	_, existed := v.hash[field]
	v.hash[field] = val
	return !existed, nil
}

// HGet returns the value of field in the hash under key. An absent key or
// field yields ("", false, nil).
func (s *Store) HGet(key, field string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.hashFor(key, false)
	if err != nil || v == nil {
		return "", false, err
	}
	val, ok := v.hash[field]
	return val, ok, nil
}

// HGetAll returns a copy of every field in the hash under key. An absent
// key yields an empty map.
func (s *Store) HGetAll(key string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string)
	if v != nil {
		for f, val := range v.hash {
			out[f] = val
		}
	}
	return out, nil
}

// HDel removes field from the hash under key. Returns true when the field
// existed and was removed.
func (s *Store) HDel(key, field string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.hashFor(key, false)
	if err != nil || v == nil {
		return false, err
	}
	if _, ok := v.hash[field]; !ok {
		return false, nil
	}
	delete(v.hash, field)
	return true, nil
}

// HExists reports whether field exists in the hash under key.
func (s *Store) HExists(key, field string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.hashFor(key, false)
	if err != nil || v == nil {
		return false, err
	}
	_, ok := v.hash[field]
	return ok, nil
}

// HLen returns the number of fields in the hash under key, 0 when absent.
func (s *Store) HLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.hashFor(key, false)
	if err != nil || v == nil {
		return 0, err
	}
	return len(v.hash), nil
}

// listFor returns the live list under key, creating an empty one when the
// key is absent and create is true. Callers must hold s.mu.
func (s *Store) listFor(key string, create bool) (*value, error) {
	e, ok := s.getLive(key, time.Now().UnixNano())
	if !ok {
		if !create {
			return nil, nil
		}
		e = &entry{val: newListValue()}
		s.data[key] = e
		return e.val, nil
	}
	if e.val.kind != TypeList {
		return nil, wrongType(key, e.val.kind, TypeList)
	}
	return e.val, nil
}

// LPush prepends val to the list under key, creating the list when the key
// is absent. Returns the new length.
func (s *Store) LPush(key, val string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.listFor(key, true)
	if err != nil {
		return 0, err
	}
	v.list = append([]string{val}, v.list...)
	return len(v.list), nil
}

// RPush appends val to the list under key, creating the list when the key
// is absent. Returns the new length.
func (s *Store) RPush(key, val string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.listFor(key, true)
	if err != nil {
		return 0, err
	}
	v.list = append(v.list, val)
	return len(v.list), nil
}

// LPop removes and returns the head of the list under key. ok is false
// when the list is empty or the key absent.
func (s *Store) LPop(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.listFor(key, false)
	if err != nil || v == nil || len(v.list) == 0 {
		return "", false, err
	}
	head := v.list[0]
	v.list = v.list[1:]
	return head, true, nil
}

// RPop removes and returns the tail of the list under key. ok is false
// when the list is empty or the key absent.
func (s *Store) RPop(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.listFor(key, false)
	if err != nil || v == nil || len(v.list) == 0 {
		return "", false, err
	}
	last := len(v.list) - 1
	tail := v.list[last]
	v.list = v.list[:last]
	return tail, true, nil
}

// LLen returns the length of the list under key, 0 when absent.
func (s *Store) LLen(key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.listFor(key, false)
	if err != nil || v == nil {
		return 0, err
	}
	return len(v.list), nil
}

// LRange returns the inclusive slice [start, stop] of the list under key,
// with negative indices counting from the end (-1 is the last element).
// Out-of-range indices are clamped; a normalized start past stop yields an
// empty slice. An absent key yields an empty slice, not an error.
func (s *Store) LRange(key string, start, stop int) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.listFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return []string{}, nil
	}

	n := len(v.list)

	if start < 0 {
		start = n + start
		if start < 0 {
			start = 0
		}
	} else if start > n {
		start = n
	}

	if stop < 0 {
		stop = n + stop
		if stop < 0 {
			stop = 0
		}
	} else if stop > n-1 {
		stop = n - 1
	}

	if start > stop || n == 0 {
		return []string{}, nil
	}

	out := make([]string, stop-start+1)
	copy(out, v.list[start:stop+1])
	return out, nil
}
