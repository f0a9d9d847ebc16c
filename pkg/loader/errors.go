package loader

import "fmt"

// ResolutionError reports that an executor name could not be resolved by
// any applicable strategy. It carries the configured name so an operator
// can correct the typo, and wraps the underlying load error.
type ResolutionError struct {
	Name string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf(
		`executor %q could not be loaded: check the "executor" key in the "core" configuration section: %v`,
		e.Name, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}
