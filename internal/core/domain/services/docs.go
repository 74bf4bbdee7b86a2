// Package services contains stateless domain services that coordinate
// multiple aggregates.
//
// Dispatcher binds riders to orders (reservation) and frees them again,
// and picks the nearest available rider for auto-dispatch. OrderPricer
// prices requested order lines against a restaurant's menu and policy.
// Both operate purely in memory; persistence and transactions belong to
// the application layer.
package services
