package store

import (
	"context"
	"fmt"

	"github.com/ValentinKolb/roads/lib/record"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IStore is the interface for reading and inserting countries, towns and roads.
// Read operations return fully materialized results, never a cursor.
// All operations return a *Error (nil on success) when the store fails.
type IStore interface {
	// GetCountries returns all countries as an id to name mapping.
	GetCountries(ctx context.Context) (countries record.IDNameMap, err error)
	// GetTownsByCountryID returns the towns of a country as an id to name mapping.
	// A country without towns yields an empty map.
	GetTownsByCountryID(ctx context.Context, countryID int16) (towns record.IDNameMap, err error)
	// GetRoadsByCountryID returns the roads of a country.
	// A country without roads yields an empty slice.
	GetRoadsByCountryID(ctx context.Context, countryID int16) (roads []record.Road, err error)
	// InsertRoad stores a road under its country.
	InsertRoad(ctx context.Context, road record.Road) (err error)
	// InsertTown stores a town under the given country. The id is assigned by the store.
	InsertTown(ctx context.Context, name string, countryID int16) (err error)
	// InsertCountry stores a country. The id is assigned by the store.
	InsertCountry(ctx context.Context, name string) (err error)
	// Close releases the connection to the store. The store must not be used afterward.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode),
// an error message and the error reported by the underlying driver.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
	Err  error   // The underlying error, may be nil.
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("StoreError (code %s): %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("StoreError (code %s): %s: %v", e.Code, e.Msg, e.Err)
}

// Unwrap returns the underlying driver error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new StoreError with the given code, message and cause.
func NewError(code RetCode, msg string, err error) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
		Err:  err,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess       RetCode = iota // 0: Command executed successfully.
	RetCInternalError                // 1: Command failed due to an internal error.
	RetCQueryFailed                  // 2: The statement could not be executed (e.g. missing table).
	RetCDecodeFailed                 // 3: A stored blob could not be decoded.
	RetCUnavailable                  // 4: The store is closed or unreachable.
)

// String returns the name of the return code
func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCInternalError:
		return "InternalError"
	case RetCQueryFailed:
		return "QueryFailed"
	case RetCDecodeFailed:
		return "DecodeFailed"
	case RetCUnavailable:
		return "Unavailable"
	default:
		return "Unknown"
	}
}
