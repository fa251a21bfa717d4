package audit

import (
	"context"
	"errors"
)

// FanOut appends to every store. All stores are attempted; errors are joined
// so one failing sink does not starve the others.
type FanOut []Store

func (f FanOut) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, store := range f {
		if err := store.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
