//go:build !rangesearch_debug

package rangesearch

const debugChecks = false
