package resource

import "errors"

// ErrFetcherNil is the panic value when New is handed a nil fetcher.
// A nil fetcher is a programmer error, not a runtime condition, so it
// fails at construction rather than at the first read.
var ErrFetcherNil = errors.New("neoflux: resource fetcher is nil")
