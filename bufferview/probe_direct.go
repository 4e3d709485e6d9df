//go:build !purego

package bufferview

const directSupported = true
