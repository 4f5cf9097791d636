// Package source analyzes Go packages without running them.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to describe
// the exported types of a module package in declaration order: struct
// fields as reflection would see them, method sets of *T, constructor
// functions and doc comments.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: kind, fields, methods, constructors and marker implementation
//   - TypeGraph: every analyzed type and package
package source
