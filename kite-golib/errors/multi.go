package errors

import (
	"bytes"
	"fmt"
)

// errorSlice is a non-empty list of non-nil errors behaving as one error.
type errorSlice []error

func (m errorSlice) Error() string {
	var b bytes.Buffer
	for i, err := range m {
		if i > 0 {
			fmt.Fprint(&b, "\n")
		}
		fmt.Fprint(&b, err)
	}
	return b.String()
}

// Combine combines errors e & f into a single error
func Combine(e, f error) error {
	switch e := e.(type) {
	case nil:
		return f
	case errorSlice:
		if f == nil {
			return e
		}
		// copy e to avoid mutating the backing array
		return append(append(errorSlice(nil), e...), f)
	default:
		switch f := f.(type) {
		case nil:
			return e
		case errorSlice:
			return append(errorSlice{e}, f...)
		default:
			return errorSlice{e, f}
		}
	}
}

// Defer is a helper method for deferring error-returning functions
func Defer(err *error, f func() error) {
	*err = Combine(*err, f())
}
