// Package core defines the shared language of the mstables system.
//
// This package contains:
//   - The Store interface implemented by every backing-store adapter
//   - Store configuration and column metadata
//   - The error kinds surfaced by loaders, catalogs and view builders
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
