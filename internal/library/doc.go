// Package library owns reconciliation concerns.
//
// Ownership boundary:
// - existence resolution by name and qualified path
//
// - create-if-absent for libraries, folders and datasets
//
// - bounded waiting on asynchronous dataset processing
//
// Library does not own the wire protocol; it consumes the Service
// capability and never caches remote state across calls.
package library
