// Package product contains the stock-ledger side of the catalog: the Product
// aggregate with its on-hand and reserved quantities.
//
// Order placement reserves stock through Reserve, cancellation returns it
// through Release, and CheckPrice protects callers against price drift
// between quoting and committing an order. Catalog administration (creating
// products, receiving stock) is an external concern; this package only
// carries the subset of Product that order placement depends on.
package product
