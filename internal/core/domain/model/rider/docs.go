// Package rider implements the Rider aggregate: duty status, availability,
// the single-active-order reservation, running ratings, earnings, and the
// last reported location.
//
// Reservation and release are the only ways the rider's order binding
// changes, which keeps the one-active-order-per-rider invariant local to
// this package.
package rider
