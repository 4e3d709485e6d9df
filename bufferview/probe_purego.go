//go:build purego

package bufferview

// Builds tagged purego never select the direct backend.
const directSupported = false
