//go:build release
// +build release

package vulkanboot

const ValidationBuild = false
