// Package script runs YAML session scripts: load modules, invoke members
// step by step and check each outcome against its expectation.
//
// # Schema Overview
//
//	version: "1"
//	modules: [fsmodel, ./plugins/notes.so]
//	marker: Entry            # optional marker override
//	steps:
//	  - type: Folder
//	    member: Rename
//	    params: Reports      # a string, or a list joined with ","
//	    expect:
//	      result: void
//	  - type: File
//	    member: Resize
//	    params: abc
//	    expect:
//	      error: CoercionError.BadFormat
//	  - reset: true          # drop every instance
//
// A step without expect passes when the invocation succeeds. Failed steps
// do not stop the run unless the runner is told to stop on failure.
package script
