package common

import (
	"path"
	"strings"
)

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// TrimModule strips modulePath and the following slash from pkgPath.
// Packages outside the module are returned unchanged.
func TrimModule(pkgPath, modulePath string) string {
	if modulePath == "" {
		return pkgPath
	}

	if pkgPath == modulePath {
		return PkgAlias(pkgPath)
	}

	if rest, ok := strings.CutPrefix(pkgPath, modulePath+"/"); ok {
		return rest
	}

	return pkgPath
}
