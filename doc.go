// Package livetune re-reads literal values from a program's own source files
// while it runs, so constants can be tuned by editing and saving the file.
//
// A call site wraps a literal in a marker call. Whenever the file's
// modification time moves, the next lookup re-scans the file, takes the
// literal that follows the Nth marker occurrence and parses it into the
// site's type. Unchanged files cost one stat per lookup.
//
// # Quick start
//
//	var (
//		reg   = livetune.New()
//		src   = reg.Here()
//		speed = livetune.Bind[float64](src) // ordinal 0
//		title = livetune.Bind[string](src)  // ordinal 1
//	)
//
//	for {
//		move(speed.Live(3.5))
//		draw(title.Live("hello"))
//	}
//
// Ordinals are handed out in Bind order and must follow the order in which
// the Live calls appear in the file. `livetune check` verifies that.
//
// # Failure semantics
//
// Lookups never fail. A missing or unreadable file, an out-of-range ordinal,
// an empty fragment or a fragment that does not parse leaves the current
// value in place, and an unreadable file is tried again on every lookup. A
// marker with nothing after it makes the whole file be skipped until the
// next edit and is logged at warn level. Looking up one call site with two
// different types is logged at error level; the second type gets its
// fallback.
//
// # Settling
//
// After an edit every call site of the file re-reads it once. The file is
// marked as seen again only after as many passes as the file has markers,
// so no site is left behind on the old value.
//
// # Release mode
//
// Building with -tags livetune_release, passing WithRelease(true) or setting
// LIVETUNE_RELEASE=1 disables all file access; Live returns its fallback.
package livetune
