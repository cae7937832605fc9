//go:build !livetune_release

package livetune

const releaseBuild = false
