// Package order implements the Order aggregate, the heart of the food-order
// lifecycle. It owns the role-gated status state machine, the append-only
// status history, the payment and refund record, and the post-delivery
// rating slots.
//
// Orders are created in Pending status through NewOrder, mutated only
// through the aggregate's transition methods, and become immutable once
// they reach a terminal status (Delivered or Cancelled).
package order
