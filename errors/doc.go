/*
Package errors provides semantic error types for the columnspace library.

Registration failures are raised synchronously while a schema is being set up,
and every one of them can be checked with the standard errors.Is() function or
the provided helper functions.

Common Errors:

	var (
	    ErrUnknownField    = errors.New("unknown field")
	    ErrNoMatchingField = errors.New("no field matches prefix")
	    ErrFieldClaimed    = errors.New("field already claimed by a namespace")
	    ErrMethodConflict  = errors.New("method name conflict")
	    ErrClassConflict   = errors.New("value class conflict")
	    ErrNotFound        = errors.New("record not found")
	    ErrInvalidInput    = errors.New("invalid input")
	)

Usage:

	_, err := columnspace.Register(products, columnspace.Mapping{
	    {Name: "foo", Fields: []string{"a", "zz"}},
	})
	if errors.IsUnknownField(err) {
	    // err.Error() == `products: unknown field(s): zz`
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
