// Package bridge converts asynchronous, push-based publishers into
// single-resolution values that ordinary Go code can wait on.
//
// Publishers deliver items through callbacks on their own schedule. The
// bridge subscribes on your behalf, buffers what arrives, and hands back
// either a blocking result or a Deferred you can await later:
//
//   - Collect / Start: every item, in emission order, once the stream ends
//   - First / StartFirst: just the first item, the rest of the stream is
//     canceled; an empty stream reports absence, not an error
//   - Each: a callback per item, blocking until the stream ends; a
//     callback error cancels the subscription and fails the call
//   - Iterate: a pull-based Iterator that requests one item per Next call
//
// Every variant resolves exactly once, with a value or an error but never
// both. A stream that fails mid-flight discards anything buffered before
// the failure. No retry or resumption happens here; callers that want
// timeouts pass a deadline-carrying context.
//
// # Usage
//
//	pub := users.Find(ctx, bson.D{{Key: "active", Value: true}})
//	all, err := bridge.Collect(ctx, pub)
//
//	one, found, err := bridge.First(ctx, users.Find(ctx, filter))
//
//	d := bridge.Start(ctx, pub) // runs in the background
//	...
//	all, err := d.Await(ctx)
package bridge
