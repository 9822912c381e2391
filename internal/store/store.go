// Package store holds Kiba's single source of truth: a mapping from key
// to a tagged value of exactly one kind (string, integer, list, set,
// hash). It is exercised by exactly one goroutine (internal/executor)
// and therefore does no internal locking of its own — the concurrency
// architecture lives one layer up.
package store

import (
	"strconv"

	"github.com/shoyo-dev/kiba/internal/hashtable"
	"github.com/shoyo-dev/kiba/internal/listbacking"
)

type kind int

const (
	kindStr kind = iota
	kindInt
	kindList
	kindSet
	kindHash
)

// value is the tagged union from the data model: a key maps to at most
// one of these, and exactly one of the fields below is meaningful for a
// given kind.
type value struct {
	kind kind
	s    string
	i    int64
	l    listbacking.List
	set  map[string]struct{}
	h    map[string]string
}

// Category names one of the closed set of store-level failure kinds. The
// executor renders these into `(error) <category>: <detail>` responses.
type Category int

const (
	WrongType Category = iota
	NotAnInteger
	IntegerOverflow
	OutOfRange
)

func (c Category) String() string {
	switch c {
	case WrongType:
		return "WRONGTYPE"
	case NotAnInteger:
		return "NotAnInteger"
	case IntegerOverflow:
		return "IntegerOverflow"
	case OutOfRange:
		return "OutOfRange"
	default:
		return "Error"
	}
}

// Error reports a failed store operation. The store is left unchanged
// whenever an Error is returned.
type Error struct {
	Category Category
	Detail   string
}

func (e *Error) Error() string {
	return e.Category.String() + ": " + e.Detail
}

func newErr(c Category, detail string) *Error {
	return &Error{Category: c, Detail: detail}
}

// Store is Kiba's keyspace. Every method assumes exclusive access —
// callers (the executor) must never call it from more than one
// goroutine concurrently.
type Store struct {
	keys     *hashtable.Table
	listKind listbacking.Kind
}

// New creates an empty Store. hasher selects the hash function backing
// the key index; listKind selects the backing used for newly created
// list values.
func New(hasher hashtable.Hasher, listKind listbacking.Kind) *Store {
	return &Store{
		keys:     hashtable.New(hasher),
		listKind: listKind,
	}
}

func (s *Store) get(key string) (*value, bool) {
	v, ok := s.keys.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*value), true
}

func (s *Store) set(key string, v *value) {
	s.keys.Set(key, v)
}

// deleteIfEmpty implements the empty-container invariant: once a list,
// set, or hash value has zero elements, the key disappears.
func (s *Store) deleteIfEmpty(key string, v *value) {
	switch v.kind {
	case kindList:
		if v.l.Len() == 0 {
			s.keys.Delete(key)
		}
	case kindSet:
		if len(v.set) == 0 {
			s.keys.Delete(key)
		}
	case kindHash:
		if len(v.h) == 0 {
			s.keys.Delete(key)
		}
	}
}

// ---- Strings / integers ----

// Get returns the decimal text of a Str or Int value, ok=false if the
// key is missing, or a WrongType error for any other kind.
func (s *Store) Get(key string) (string, bool, error) {
	v, ok := s.get(key)
	if !ok {
		return "", false, nil
	}
	switch v.kind {
	case kindStr:
		return v.s, true, nil
	case kindInt:
		return strconv.FormatInt(v.i, 10), true, nil
	default:
		return "", false, newErr(WrongType, "value is not a string")
	}
}

// Set unconditionally replaces key's value with a Str, regardless of
// what it held before.
func (s *Store) Set(key, val string) {
	s.set(key, &value{kind: kindStr, s: val})
}

// Exists reports whether key currently holds any value.
func (s *Store) Exists(key string) bool {
	_, ok := s.get(key)
	return ok
}

// Del removes key if present and reports whether it was present.
func (s *Store) Del(key string) bool {
	return s.keys.Delete(key)
}

// numericValue resolves the current integer reading of key for the
// INCR/DECR family: missing keys read as 0, an Int value reads as
// itself, a Str value must be base-10 decimal, anything else is
// WrongType.
func (s *Store) numericValue(key string) (int64, *value, bool, error) {
	v, ok := s.get(key)
	if !ok {
		return 0, nil, false, nil
	}
	switch v.kind {
	case kindInt:
		return v.i, v, true, nil
	case kindStr:
		n, err := strconv.ParseInt(v.s, 10, 64)
		if err != nil {
			return 0, nil, false, newErr(NotAnInteger, "value is not an integer")
		}
		return n, v, true, nil
	default:
		return 0, nil, false, newErr(WrongType, "value is not a string or integer")
	}
}

// checkedAdd computes a+b over int64, reporting overflow rather than
// wrapping. Written to avoid negating math.MinInt64 anywhere, since
// -math.MinInt64 itself overflows int64.
func checkedAdd(a, b int64) (int64, bool) {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		return 0, false
	}
	return sum, true
}

// checkedSub computes a-b over int64 without ever negating b, so it
// stays correct even when b is math.MinInt64 (whose negation itself
// overflows int64).
func checkedSub(a, b int64) (int64, bool) {
	diff := a - b
	if ((a ^ b) & (a ^ diff)) < 0 {
		return 0, false
	}
	return diff, true
}

func (s *Store) applyDelta(key string, delta int64) (int64, error) {
	cur, _, _, err := s.numericValue(key)
	if err != nil {
		return 0, err
	}
	next, ok := checkedAdd(cur, delta)
	if !ok {
		return 0, newErr(IntegerOverflow, "increment or decrement would overflow a 64-bit integer")
	}
	s.set(key, &value{kind: kindInt, i: next})
	return next, nil
}

func (s *Store) applyNegDelta(key string, delta int64) (int64, error) {
	cur, _, _, err := s.numericValue(key)
	if err != nil {
		return 0, err
	}
	next, ok := checkedSub(cur, delta)
	if !ok {
		return 0, newErr(IntegerOverflow, "increment or decrement would overflow a 64-bit integer")
	}
	s.set(key, &value{kind: kindInt, i: next})
	return next, nil
}

// Incr and IncrBy add; Decr and DecrBy subtract via applyNegDelta so
// that decrementing by math.MinInt64 is handled correctly instead of
// overflowing while negating the delta.
func (s *Store) Incr(key string) (int64, error)            { return s.applyDelta(key, 1) }
func (s *Store) Decr(key string) (int64, error)            { return s.applyNegDelta(key, 1) }
func (s *Store) IncrBy(key string, n int64) (int64, error) { return s.applyDelta(key, n) }
func (s *Store) DecrBy(key string, n int64) (int64, error) { return s.applyNegDelta(key, n) }

// ---- Lists ----

func (s *Store) listFor(key string, createIfMissing bool) (*value, error) {
	v, ok := s.get(key)
	if !ok {
		if !createIfMissing {
			return nil, nil
		}
		v = &value{kind: kindList, l: listbacking.New(s.listKind)}
		s.set(key, v)
		return v, nil
	}
	if v.kind != kindList {
		return nil, newErr(WrongType, "value is not a list")
	}
	return v, nil
}

// LPush and RPush create the list on first use and return its new
// length.
func (s *Store) LPush(key string, vals []string) (int, error) {
	v, err := s.listFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, x := range vals {
		v.l.PushFront(x)
	}
	return v.l.Len(), nil
}

func (s *Store) RPush(key string, vals []string) (int, error) {
	v, err := s.listFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, x := range vals {
		v.l.PushBack(x)
	}
	return v.l.Len(), nil
}

// LPop and RPop return ok=false (render as Nil) on a missing or empty
// list, popping and deleting the key if the pop empties it.
func (s *Store) LPop(key string) (string, bool, error) {
	v, err := s.listFor(key, false)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	x, ok := v.l.PopFront()
	if ok {
		s.deleteIfEmpty(key, v)
	}
	return x, ok, nil
}

func (s *Store) RPop(key string) (string, bool, error) {
	v, err := s.listFor(key, false)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	x, ok := v.l.PopBack()
	if ok {
		s.deleteIfEmpty(key, v)
	}
	return x, ok, nil
}

// LLen returns 0 for a missing key.
func (s *Store) LLen(key string) (int, error) {
	v, err := s.listFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return v.l.Len(), nil
}

// LRange resolves negative and out-of-bounds indices against the list's
// current length before delegating to the backing's Range.
func (s *Store) LRange(key string, start, stop int64) ([]string, error) {
	v, err := s.listFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	n := int64(v.l.Len())
	if n == 0 {
		return nil, nil
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if start > stop || start >= n {
		return nil, nil
	}
	return v.l.Range(int(start), int(stop)), nil
}

// ---- Sets ----

func (s *Store) setFor(key string, createIfMissing bool) (*value, error) {
	v, ok := s.get(key)
	if !ok {
		if !createIfMissing {
			return nil, nil
		}
		v = &value{kind: kindSet, set: make(map[string]struct{})}
		s.set(key, v)
		return v, nil
	}
	if v.kind != kindSet {
		return nil, newErr(WrongType, "value is not a set")
	}
	return v, nil
}

// SAdd returns the set's cardinality after insertion, not the count of
// newly added members — the spec's own examples call for this, diverging
// from conventional Redis semantics.
func (s *Store) SAdd(key string, members []string) (int, error) {
	v, err := s.setFor(key, true)
	if err != nil {
		return 0, err
	}
	for _, m := range members {
		v.set[m] = struct{}{}
	}
	return len(v.set), nil
}

// SRem returns the count of members actually removed, deleting the key
// if the set becomes empty.
func (s *Store) SRem(key string, members []string) (int, error) {
	v, err := s.setFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	removed := 0
	for _, m := range members {
		if _, ok := v.set[m]; ok {
			delete(v.set, m)
			removed++
		}
	}
	if removed > 0 {
		s.deleteIfEmpty(key, v)
	}
	return removed, nil
}

// SMembers returns all members in unspecified order, nil for a missing
// key.
func (s *Store) SMembers(key string) ([]string, error) {
	v, err := s.setFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out := make([]string, 0, len(v.set))
	for m := range v.set {
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) SIsMember(key, member string) (bool, error) {
	v, err := s.setFor(key, false)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	_, ok := v.set[member]
	return ok, nil
}

func (s *Store) SCard(key string) (int, error) {
	v, err := s.setFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return len(v.set), nil
}

// ---- Hashes ----

func (s *Store) hashFor(key string, createIfMissing bool) (*value, error) {
	v, ok := s.get(key)
	if !ok {
		if !createIfMissing {
			return nil, nil
		}
		v = &value{kind: kindHash, h: make(map[string]string)}
		s.set(key, v)
		return v, nil
	}
	if v.kind != kindHash {
		return nil, newErr(WrongType, "value is not a hash")
	}
	return v, nil
}

// HSet always returns 1, whether the field was new or overwritten — the
// source this spec comes from does not differentiate.
func (s *Store) HSet(key, field, val string) (int, error) {
	v, err := s.hashFor(key, true)
	if err != nil {
		return 0, err
	}
	v.h[field] = val
	return 1, nil
}

func (s *Store) HGet(key, field string) (string, bool, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	val, ok := v.h[field]
	return val, ok, nil
}

// HDel returns the number of fields actually removed, deleting the key
// if the hash becomes empty.
func (s *Store) HDel(key string, fields []string) (int, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	removed := 0
	for _, f := range fields {
		if _, ok := v.h[f]; ok {
			delete(v.h, f)
			removed++
		}
	}
	if removed > 0 {
		s.deleteIfEmpty(key, v)
	}
	return removed, nil
}

func (s *Store) HExists(key, field string) (bool, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return false, err
	}
	if v == nil {
		return false, nil
	}
	_, ok := v.h[field]
	return ok, nil
}

func (s *Store) HKeys(key string) ([]string, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out := make([]string, 0, len(v.h))
	for f := range v.h {
		out = append(out, f)
	}
	return out, nil
}

func (s *Store) HVals(key string) ([]string, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	out := make([]string, 0, len(v.h))
	for _, val := range v.h {
		out = append(out, val)
	}
	return out, nil
}

func (s *Store) HLen(key string) (int, error) {
	v, err := s.hashFor(key, false)
	if err != nil {
		return 0, err
	}
	if v == nil {
		return 0, nil
	}
	return len(v.h), nil
}
