//go:build !release
// +build !release

package vulkanboot

// ValidationBuild reports whether this binary was built with validation enabled.
const ValidationBuild = true
