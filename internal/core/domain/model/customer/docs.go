// Package customer contains the receivables side of a customer account: the
// Customer aggregate with its debt and prepaid credit balances, and the Tier
// credit policy attached to it.
//
// Order placement increases debt, cancellation decreases it (clamped at
// zero), and the tier's three policy knobs gate whether a proposed order may
// be placed at all. Account administration lives outside this package.
package customer
