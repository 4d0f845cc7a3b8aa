// Package simvhal implements vhal.Service on top of SQLite.
//
// A Store holds property descriptors and current values for a simulated
// vehicle. It is seeded from a YAML fixture (see LoadFixture) and keeps
// values written through Set across restarts. Bounds, enum lists and values
// are stored CBOR-encoded so each keeps its Go type on the way back out.
//
// The store enforces what a real vehicle would: reads of write-only
// properties and writes to read-only ones are rejected, numeric writes must
// fall inside the area's bounds, and int32 writes must be one of the area's
// supported enum values when it lists any.
package simvhal
