package common

import "path"

// PkgAlias returns the default import name of pkgPath, its last element.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// ShortQualified returns name qualified by the alias of pkgPath, the way a
// declaration reads at its use site ("fsmodel.Folder"). Names of the
// universe scope stay unqualified.
func ShortQualified(pkgPath, name string) string {
	if alias := PkgAlias(pkgPath); alias != "" {
		return alias + "." + name
	}

	return name
}
