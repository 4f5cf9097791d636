// Package fsmodel is a small in-memory filesystem domain: folders holding
// documents and files, archives and shortcuts. It registers itself as the
// linked module "fsmodel" and is what the typeprobe CLI inspects when no
// other module is given.
//
// Folder and File are built through their constructors with the designated
// defaults ("TestFolder" and "TestFile" of 1024 bytes); an Archive has no
// usable zero value and no registered constructor, so it cannot be built by
// the engine.
package fsmodel
