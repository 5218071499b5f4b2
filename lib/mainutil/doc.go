// Package mainutil provides miscellaneous tools for implementing the main()
// function of the rangesearch command line tools: version and logging flags,
// and the setup of the global zerolog logger.
//
package mainutil
