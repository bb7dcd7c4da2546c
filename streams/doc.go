// Package streams defines push-based publisher, subscriber, and subscription
// contracts modeled on the Reactive Streams interfaces, generic over the
// item type.
//
// A Publisher pushes zero or more items at a Subscriber, followed by exactly
// one terminal signal (completion or error). Demand flows the other way: the
// subscriber asks for items through its Subscription, and a publisher only
// emits while requested demand is outstanding. The Unbounded constant
// saturates demand for consumers that want everything the source has.
//
// The package also provides in-memory sources (FromSlice, Just, Empty,
// Generate, Fail) used both as building blocks and as test instruments.
// Consumption helpers that turn publishers into collected results live in
// the bridge package.
package streams
