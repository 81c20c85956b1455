// Package tenant carries the subset of a tenant organization that order
// placement depends on: the order number prefix and the timezone whose local
// midnight resets the daily order sequence.
package tenant
