// Package feed fans out row level change notifications to subscribers.
//
// A Broker is fed either directly through Publish, after a handler writes to
// the store, or by Watch, which tails a MongoDB change stream. Subscribers
// register for one table and one operation class (OpAll for every class) and
// receive changes in order on their own goroutine, so a slow subscriber never
// holds up the publisher or its peers.
//
// Delivery is best effort. When a subscriber falls behind and its buffer
// fills up, further changes for it are dropped and it later receives a single
// resync change (see Change.Resync) telling it to reload the whole table.
package feed
