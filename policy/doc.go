// Package policy decides what a principal may see and do in the dashboard.
//
// Every page consults the same rules: which navigation entries render, which
// stat cards show, which action buttons are offered. The rules live here as
// named predicates so there is one source of truth for them.
//
// The resolver is a presentation filter. It decides what is offered to a
// user, not what the user is able to do against the store: the store's own
// access rules remain the authority for reads and writes, and nothing in
// this package is sufficient authorization on its own.
//
// A missing or unrecognised role resolves to Responder, the least
// privileged role.
package policy
