// Package module defines the contract between typeprobe and the code it inspects.
//
// A module is a Manifest: an ordered list of exported Go types, the marker
// interface that makes a type a candidate for inspection, and the
// construction strategies for types whose zero value is not a usable instance.
//
// Manifests reach the engine in two ways:
//   - linked: the package calls Register from an init function and the
//     binary imports it, the way database/sql drivers register themselves;
//   - plugin: a package main built with -buildmode=plugin exports a
//     variable named Manifest.
//
// Key types:
//   - Manifest: name, marker and exports of one module
//   - Export: one exported type and how to construct it
//   - Strategy: a validated constructor function plus designated defaults
package module
