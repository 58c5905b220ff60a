// Package configs holds the StormKeys project layout and settings.
//
// The key locations, artifact filenames, and root marker are fixed by the
// downstream token services that consume the keys. An optional
// .stormkeys/config.toml at the project root may override the location
// list and key size at config time; nothing is discovered dynamically.
package configs
