// Package gen generates the module manifest of a Go package from its
// source analysis.
//
// Generation uses text/template + go/format. The generated file declares a
// function returning a *module.Manifest with:
//   - the marker interface, when one was requested
//   - every exported type implementing it (or every concrete type)
//   - the first constructor of each type as its construction strategy
//   - declared parameter names for every method
//
// Optionally it registers the manifest as a linked module in init, or
// exposes it as the Manifest symbol of a plugin.
package gen
