package store

import "go.uber.org/fx"

// Module exposes the order store to the fx graph.
var Module = fx.Provide(New)
