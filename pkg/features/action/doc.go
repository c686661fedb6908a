// Package action provides user-triggered async mutations with reactive
// state.
//
// An Action bundles loading/error/success state, cancellation, and
// dispatch into one unit. The work function executes off the caller's
// goroutine; every state transition is committed through a batch so
// state, result and error always change together.
//
//	save := action.New(func(ctx context.Context, p Profile) (Profile, error) {
//	    return api.SaveProfile(ctx, p)
//	})
//
//	neoflux.CreateEffect(func() neoflux.Cleanup {
//	    if save.IsRunning() {
//	        spinner.SetTrue()
//	    } else {
//	        spinner.SetFalse()
//	    }
//	    return nil
//	})
//
//	save.Run(profile)
//
// Concurrent Run calls are resolved by the configured Policy:
// CancelLatest (default) cancels in-flight work so the newest call wins,
// DropWhileRunning rejects calls while busy, and Queue buffers them up to
// a bound, failing with ErrQueueFull beyond it.
package action
