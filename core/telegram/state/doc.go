// Package state implements the conversation engine behind multi-step forms.
//
// A form is a Group: a named, ordered list of states. A Session pins one
// chat participant to a group and a current state, carrying collected
// answers in an insertion-ordered scratch area. Transitions are strictly
// linear: Enter starts a form, Advance moves to the next declared state,
// Finish and Cancel both drop the session. Branching conversations are
// modeled as finishing one group and entering another.
//
// Transitions are synchronous and purely in-memory. Callers that handle
// events concurrently must serialize them per session key; the router does
// this with a keyed mutex.
package state
