// File: api/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package api holds the shared contracts of hioload-io: readiness event
// masks exchanged between the loop and the platform reactor, and the error
// vocabulary that leaf operations translate OS failures into.
//
// The package depends on nothing else in the module so that every layer
// (promise core, reactor, loop, leaves) can speak the same types without
// import cycles.
package api
