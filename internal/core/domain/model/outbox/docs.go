// Package outbox models the durable outbound event log. Order mutations
// append events in the same transaction as the mutation itself; a background
// job drains undispatched events to the message broker after commit.
package outbox
