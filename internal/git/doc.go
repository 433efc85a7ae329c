// Package git reads version-control metadata for the icon tree.
//
// The only consumer is the cache header: the revision of the repository
// that contains the scanned directory, recorded so the game server can tell
// which checkout a cache was generated from. Lookups are best effort.
package git
