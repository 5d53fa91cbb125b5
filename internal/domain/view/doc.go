// Package view orchestrates opened blueprints.
//
// Opening a view resolves the idea from the catalog and starts exactly one
// asynchronous content fetch. The numeric dashboard never waits for it: it
// is recomputed from the idea id on every request. When the fetch ends the
// view becomes ready (text parsed into blocks) or failed (a user-facing
// message, nothing parsed).
//
// Lifecycle:
//
//	loading --fetch ok--> ready
//	loading --fetch err--> failed
//	ready/failed --Retry--> loading
//
// At most one fetch runs per view; Retry while loading returns
// ErrFetchInFlight. Close cancels the running fetch.
package view
