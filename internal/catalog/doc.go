// Package catalog loads modules and discovers their candidate types.
//
// A module is found either among the modules linked into the binary
// (module.Register) or as a Go plugin file exporting a Manifest symbol.
// Opening a plugin runs the package initializers of the plugin and of every
// package it links that the host has not initialized yet. This happens
// inside the Go runtime before the engine sees the manifest and cannot be
// prevented or undone; plugins also cannot be unloaded.
package catalog
