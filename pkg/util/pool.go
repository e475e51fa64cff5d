package util

import "runtime"

// GetOptimalPoolSize returns the number of parsers a shared parser pool may
// hold: min(max(runtime.NumCPU(), 2), 16).
//
// The batch generator is sequential and asks for a single parser. The MCP
// server shares one parser manager across tool calls, which the client may
// issue concurrently; it uses this size.
func GetOptimalPoolSize() int {
	poolSize := runtime.NumCPU()

	if poolSize < 2 {
		poolSize = 2
	}
	if poolSize > 16 {
		poolSize = 16
	}

	return poolSize
}

// GetOptimalPoolSizeWithOverride returns override when it is positive and
// GetOptimalPoolSize() otherwise.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
