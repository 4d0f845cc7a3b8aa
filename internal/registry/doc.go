// Package registry holds the allow-list of vehicle properties the tool may
// expose, and the transform that builds it from a YAML definition file.
//
// The transform is pure: config text goes in, a validated list of entries
// comes out. The propgen command renders those entries as Go source; the
// server can also load a file at startup through LoadFile. Both paths apply
// the same validation and produce the same immutable Registry.
//
// # Definition file
//
//	properties:
//	  - name: INFO_VIN
//	    description: Vehicle identification number.
//	  - name: VENDOR_AMBIENT_LIGHT
//	    id: 591397123
//	    description: Ambient light colour.
//
// Entries without an id are platform properties and are resolved by name.
// A literal id in the system-owned range is rejected: platform ids must be
// referenced by name so they track the platform definition.
package registry
