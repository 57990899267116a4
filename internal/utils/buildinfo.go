package utils

import (
	"runtime/debug"
)

const unknownVersion = "unknown"

// GetApplicationVersion reports the module version recorded in the binary's
// build metadata. Development builds without release metadata report
// "unknown".
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return unknownVersion
	}
	moduleVersion := buildInfo.Main.Version
	if moduleVersion == "" || moduleVersion == "(devel)" {
		return unknownVersion
	}
	return moduleVersion
}
