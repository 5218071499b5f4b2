package mainutil

import (
	_ "embed"
	"strings"
)

//go:embed version.txt
var libVersion string

var appVersion string = "unset"

// LibVersion returns the version of the rangesearch libraries.
func LibVersion() string {
	return strings.Trim(libVersion, " \t\r\n")
}

// SetAppVersion changes the application version.
func SetAppVersion(version string) {
	appVersion = strings.Trim(version, " \t\r\n")
}

// AppVersion returns the application version.
func AppVersion() string {
	return appVersion
}
