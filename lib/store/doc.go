// Package store provides the access layer to the relational data behind the
// roads service: countries, towns and roads.
//
// The package focuses on:
//   - A unified interface (IStore) for the typed read and insert operations
//   - Unified error reporting, so callers can tell a store failure apart from other errors
//
// Key Components:
//
//   - IStore Interface: The core abstraction defining the read and insert
//     operations. Reads always drain the underlying cursor before returning,
//     callers never see a streaming result.
//
//   - Error System: Every failure of the underlying store is reported as a *Error
//     carrying a RetCode and the driver error (reachable via errors.Unwrap). The
//     command dispatcher uses this to answer with a fixed diagnostic instead of
//     failing the session.
//
// Implementations:
//
//   - SQL Store (sqlstore): An implementation on top of database/sql which holds
//     exactly one connection for its lifetime. Concurrent callers are serialized
//     on that connection. Supports the sqlite3 and mysql drivers.
//     Available in the "github.com/ValentinKolb/roads/lib/store/sqlstore" package.
package store
