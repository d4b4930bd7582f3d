// Package cache stores parsed declaration files on disk, keyed by the
// SHA-256 of their content, so unchanged inputs skip YAML parsing.
//
// Entries are msgpack-encoded and carry a schema version; an entry with
// a different version is treated as a miss.
package cache
