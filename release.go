//go:build livetune_release

package livetune

// releaseBuild disables every Registry; lookups return their fallback.
const releaseBuild = true
