// Package resource provides reactive async data loading.
//
// A Resource wraps a fetcher function and exposes its lifecycle as tracked
// reads: State, Data, Err and Loading. Fetches race safely: every fetch
// gets a sequence number, and only the newest sequence may commit its
// outcome, so a slow stale response never overwrites a fresh one. The
// superseded fetch also has its context cancelled.
//
// Basic usage:
//
//	user := resource.New(func(ctx context.Context) (*User, error) {
//	    return db.FindUser(ctx, id)
//	})
//
//	neoflux.CreateEffect(func() neoflux.Cleanup {
//	    if user.Loading() {
//	        fmt.Println("loading...")
//	    } else if err := user.Err(); err != nil {
//	        fmt.Println("failed:", err)
//	    } else {
//	        fmt.Println("hello,", user.Data().Name)
//	    }
//	    return nil
//	})
//
// A resource with a declared source refetches whenever the source changes:
//
//	query := neoflux.NewSignal("")
//	results := resource.NewWithSource(query.Get,
//	    func(ctx context.Context, q string) ([]User, error) {
//	        return api.Search(ctx, q)
//	    })
//
// Resources are lazy: the first fetch starts on the first read (or the
// first Refetch call), so configuration chained after the constructor is
// always in place before any fetch runs.
//
// Failure policy: a failed fetch records the error and flips state to
// Failed, but keeps the previous data until the next successful fetch.
package resource
