// Package testing provides standardised tests and benchmarks for
// store implementations that satisfy the store.IStore interface.
//
// The package contains:
//   - testing: A test suite for validating conformance to the IStore interface contract
//   - benchmark: Performance tests for measuring throughput of the read operations
//
// Example usage:
//
//	// Creating a factory function for your implementation
//	factory := func(tb testing.TB) store.IStore {
//		return newMyStoreWithSchema(tb)
//	}
//
//	// Running the standard test suite
//	storetesting.RunStoreTests(t, "MyStore", factory)
//
//	// Running performance benchmarks
//	storetesting.RunStoreBenchmarks(b, "MyStore", factory)
package testing
