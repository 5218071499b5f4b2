// Package searchutil provides miscellaneous utility functions for use by the
// rangesearch libraries and by the tools built on them.
//
package searchutil
