// Package listview keeps one page's in-memory copy of a collection.
//
// A View fetches the full collection, filters it locally, stays fresh from
// the change feed and runs create, update and delete actions with user
// facing notifications. Each action goes idle -> submitting -> idle and is
// never retried automatically.
//
// Fetches are tagged with a generation number. A response that arrives after
// a newer fetch was issued, or after Close, is dropped, so the collection
// always reflects the most recently issued fetch.
package listview
