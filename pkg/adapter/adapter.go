// Package adapter provides the backing-store adapter contract and the shared
// database/sql plumbing used by concrete adapters.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves with this package from their init() functions.
package adapter

import (
	"github.com/leapstack-labs/mstables/pkg/core"
)

// Type aliases so adapter implementations need only import this package.
type (
	// Adapter is an alias for core.Store.
	Adapter = core.Store

	// Config is an alias for core.StoreConfig.
	Config = core.StoreConfig

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)
