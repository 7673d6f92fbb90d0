// Package biasmetrics holds build metadata for the biasmetrics module.
package biasmetrics

// Version is the release of the module, printed by "biasmetrics version".
// Release builds overwrite it through -ldflags "-X".
var Version = "0.1.0"

// ModulePath is the import path of the module.
const ModulePath = "github.com/mesh-intelligence/biasmetrics"
