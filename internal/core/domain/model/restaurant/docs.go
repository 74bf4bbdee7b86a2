// Package restaurant implements the Restaurant aggregate: the menu with
// per-item availability and customization groups, the pricing policy the
// order pricer consumes, the operating status, and the running rating.
package restaurant
