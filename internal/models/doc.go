// Package models defines domain entities and persistence interfaces for the tidy run history journal.
//
// The package contains two categories of types:
//
// 1. Persistent Entities: database-backed rows with full lifecycle management
//   - [Run] : One organize run with its aggregate counts and duration
//   - [Move] : One file relocation performed during a run
//
// 2. Interfaces: [Model] provides ID generation, timestamps, and validation;
// [Repository] defines standard CRUD operations for database access.
//
// History is a read-only journal of what each run did. It is not an undo log:
// nothing in this package can reverse a move.
package models
