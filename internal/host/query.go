package host

import "fmt"

// QueryError wraps a failed host call with the operation that issued it.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("host query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// QueryE runs a fallible host call, converting both returned errors and
// panics into a *QueryError. Host APIs queried with options that do not
// apply (or with stale handles) fail here instead of propagating.
func QueryE[T any](op string, fn func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			err = &QueryError{Op: op, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	v, err = fn()
	if err != nil {
		var zero T
		return zero, &QueryError{Op: op, Err: err}
	}
	return v, nil
}

// Query runs a fallible host call and substitutes the fallback on any
// failure. This is the uniform guard used at every host boundary on the
// render path, where degradation must be silent.
func Query[T any](op string, fallback T, fn func() (T, error)) T {
	v, err := QueryE(op, fn)
	if err != nil {
		return fallback
	}
	return v
}
