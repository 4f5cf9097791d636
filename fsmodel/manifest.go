package fsmodel

import "typeprobe/module"

// ModuleName is the name fsmodel registers under.
const ModuleName = "fsmodel"

// Manifest lists the filesystem item types in declaration order. Item and
// Entry are exported so that tools can see them, but only Entry
// implementations are discovered by default.
func Manifest() *module.Manifest {
	return module.New(ModuleName,
		module.Marker[Entry](),
		module.Type[Entry](),
		module.Type[Item](
			module.ParamNames("Rename", "name"),
		),
		module.Type[Document](
			module.ParamNames("Rename", "name"),
			module.ParamNames("Append", "text"),
			module.ParamNames("Tag", "labels"),
			module.ParamNames("Prioritize", "level"),
		),
		module.Type[Folder](
			module.Constructor(NewFolder, "TestFolder", nil),
			module.ParamNames("Rename", "name"),
			module.ParamNames("Add", "name"),
			module.ParamNames("Find", "name"),
			module.ParamNames("Move", "parent"),
			module.ParamNames("Hide", "hidden"),
		),
		module.Type[File](
			module.Constructor(NewFile, "TestFile", nil, 1024),
			module.ParamNames("Rename", "name"),
			module.ParamNames("Resize", "size"),
			module.ParamNames("Chmod", "mode"),
			module.ParamNames("Touch", "at"),
			module.ParamNames("Compress", "ratio"),
		),
		module.Type[Archive](
			module.ZeroInvalid(),
			module.ParamNames("Pack", "name"),
		),
		module.Type[Shortcut](
			module.ParamNames("Expire", "after"),
		),
	)
}

func init() {
	module.Register(Manifest())
}
