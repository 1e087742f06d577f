package errs

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("not found")

	ErrItemNotFound     = fmt.Errorf("item %w", ErrNotFound)
	ErrBorrowerNotFound = fmt.Errorf("borrower %w", ErrNotFound)
	ErrLoanNotFound     = fmt.Errorf("loan %w", ErrNotFound)
)
