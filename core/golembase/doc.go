// Package golembase is the client side of the Golem Base entity store.
//
// The store holds append-only entities: an opaque payload plus string and
// numeric annotation lists, addressed by a content-derived entity key and
// expiring after a time-to-live. This package provides:
//
//   - the wire types (Entity, Create, Update, Receipt, EntityMetadata)
//   - a query builder that reproduces the store's query grammar exactly
//   - a Client interface with a JSON-RPC implementation over HTTP, plus a
//     websocket subscription for entity lifecycle events
//
// The store's consensus and storage engine are out of scope; the client
// treats the endpoint as an opaque service.
package golembase
