package utils

import (
	"math"
	"runtime"
)

// GetMemUsage reports the live heap and the memory obtained from the OS, in
// MiB, and the number of completed GC cycles
func GetMemUsage() (allocMiB, sysMiB uint64, numGC uint32) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	allocMiB, sysMiB, numGC = m.Alloc>>20, m.Sys>>20, m.NumGC
	return
}

func IsNan(A any) bool {
	switch v := A.(type) {
	case float64:
		return math.IsNaN(v)
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) {
				return true
			}
		}
	case [][3]float64:
		for _, f := range v {
			if math.IsNaN(f[0]) || math.IsNaN(f[1]) || math.IsNaN(f[2]) {
				return true
			}
		}
	}
	return false
}
