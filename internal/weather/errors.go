package weather

import "fmt"

// ProviderError reports a failed live weather lookup. The resolver always
// recovers from it by falling back to mock data.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("weather provider: %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
