// Package record defines the value types served by the roads service.
//
// Countries and towns have no dedicated struct: both are read as an id to
// name mapping (IDNameMap). Roads are self-contained records that are stored
// as a serialized blob and sent to clients unchanged.
package record
