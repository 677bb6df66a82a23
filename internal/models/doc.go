// Package models defines the core domain models for the marketplace.
//
// # Models
//
//   - User: a registered identity (username + one-way password verifier)
//   - Item: a sellable catalog entry, priced in minor currency units
//   - Transaction: a single buy/sell operation with a lifecycle status
//   - Record: the immutable summary of a terminal transaction, as it
//     appears in a ledger's history
//
// # Design Principles
//
//  1. **Minor units everywhere**: all amounts are int64 minor currency units
//  2. **Avoid circular references**: models reference each other by ID string
//  3. **Value history**: ledgers hold Record values, never pointers back into
//     engine state
package models
