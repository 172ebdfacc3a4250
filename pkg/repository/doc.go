// Package repository provides the data access layer for the Aniscout
// application.
//
// It defines the Repository interface and implements it using BoltDB
// (via bolthold) as the underlying storage engine. The repository handles:
//   - Research item persistence with source-URL deduplication
//   - Trending, actionable and per-source queries for the dashboard boundary
//   - Run log bookkeeping for ingestion runs
//
// The implementation uses bolthold for embedded, serverless persistence
// with ACID guarantees.
package repository
