package framework

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/stretchr/testify/assert"
)

// Each check below records exactly one outcome in the ledger and returns it. The optional name
// labels the outcome; the default is the name of the check.
//
// For the "throws" family, a function is considered to throw if it returns a non-nil error or
// panics. An abort raised inside the function by a nested Assert* is never treated as a throw;
// it keeps propagating.

// Equal checks that result equals expected. Values are compared with assert.ObjectsAreEqual,
// so strings are compared by content and byte slices by their bytes.
func (t *T) Equal(result, expected interface{}, name ...string) bool {
	n := t.begin("equal", name)
	ok := assert.ObjectsAreEqual(expected, result)
	return t.record(n, ok, ComparisonFailure{Name: n, Result: result, Expected: expected})
}

// NotEqual checks that result differs from expected.
func (t *T) NotEqual(result, expected interface{}, name ...string) bool {
	n := t.begin("not_equal", name)
	ok := !assert.ObjectsAreEqual(expected, result)
	return t.record(n, ok, ComparisonFailure{Name: n, Result: result, Expected: expected})
}

// True checks that v is true.
func (t *T) True(v bool, name ...string) bool {
	n := t.begin("true", name)
	return t.record(n, v, AssertionFailure{Name: n, Reason: "Did not return true"})
}

// False checks that v is false.
func (t *T) False(v bool, name ...string) bool {
	n := t.begin("false", name)
	return t.record(n, !v, AssertionFailure{Name: n, Reason: "Did not return false"})
}

// NoThrow checks that fn neither returns an error nor panics.
func (t *T) NoThrow(fn func() error, name ...string) bool {
	n := t.begin("no_throw", name)
	err := catch(fn)
	var failure error
	if err != nil {
		failure = AssertionFailure{Name: n, Reason: fmt.Sprintf("Threw: %T\n%s", err, err)}
	}
	return t.record(n, err == nil, failure)
}

// Throws checks that fn returns an error or panics.
func (t *T) Throws(fn func() error, name ...string) bool {
	n := t.begin("throws", name)
	err := catch(fn)
	return t.record(n, err != nil, AssertionFailure{Name: n, Reason: "Did not throw"})
}

// ThrowsKind checks that fn throws an error matching target, as determined by errors.As.
// target must be a non-nil pointer to an error type or interface, exactly as for errors.As.
func (t *T) ThrowsKind(fn func() error, target interface{}, name ...string) bool {
	kind := kindName(target)
	n := t.begin("throws<"+kind+">", name)
	err := catch(fn)
	ok := err != nil && errors.As(err, target)
	var failure error
	switch {
	case err == nil:
		failure = AssertionFailure{Name: n, Reason: "Did not throw " + kind}
	case !ok:
		failure = AssertionFailure{Name: n, Reason: fmt.Sprintf("\n\tThrew: %T, what():\n%s", err, err)}
	}
	return t.record(n, ok, failure)
}

// AssertEqual is like Equal, but aborts the case if the check fails.
func (t *T) AssertEqual(result, expected interface{}, name ...string) {
	if !t.Equal(result, expected, orDefault("assert_equal", name)) {
		t.FailNow()
	}
}

// AssertNotEqual is like NotEqual, but aborts the case if the check fails.
func (t *T) AssertNotEqual(result, expected interface{}, name ...string) {
	if !t.NotEqual(result, expected, orDefault("assert_not_equal", name)) {
		t.FailNow()
	}
}

// AssertTrue is like True, but aborts the case if the check fails.
func (t *T) AssertTrue(v bool, name ...string) {
	if !t.True(v, orDefault("assert_true", name)) {
		t.FailNow()
	}
}

// AssertFalse is like False, but aborts the case if the check fails.
func (t *T) AssertFalse(v bool, name ...string) {
	if !t.False(v, orDefault("assert_false", name)) {
		t.FailNow()
	}
}

// AssertNoThrow is like NoThrow, but aborts the case if the check fails.
func (t *T) AssertNoThrow(fn func() error, name ...string) {
	if !t.NoThrow(fn, orDefault("assert_no_throw", name)) {
		t.FailNow()
	}
}

// AssertThrows is like Throws, but aborts the case if the check fails.
func (t *T) AssertThrows(fn func() error, name ...string) {
	if !t.Throws(fn, orDefault("assert_throws", name)) {
		t.FailNow()
	}
}

// AssertThrowsKind is like ThrowsKind, but aborts the case if the check fails.
func (t *T) AssertThrowsKind(fn func() error, target interface{}, name ...string) {
	if !t.ThrowsKind(fn, target, orDefault("assert_throws<"+kindName(target)+">", name)) {
		t.FailNow()
	}
}

func catch(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*T); ok {
				panic(r)
			}
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return fn()
}

func kindName(target interface{}) string {
	rt := reflect.TypeOf(target)
	if rt == nil {
		return "<nil>"
	}
	if rt.Kind() == reflect.Ptr {
		return rt.Elem().String()
	}
	return rt.String()
}

func orDefault(defaultName string, name []string) string {
	if len(name) > 0 && name[0] != "" {
		return name[0]
	}
	return defaultName
}
