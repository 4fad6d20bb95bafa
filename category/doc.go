// Package category resolves per-category level overrides.
//
// Categories are dot-delimited names such as "app.network.http". Three
// pattern forms can be registered:
//
//	app.network     exact name
//	app.*           app itself and anything nested below it
//	*.db, app.*.io  general wildcards; "*" matches one segment and a
//	                trailing ".*" matches zero or more segments
//
// Resolution is deterministic: exact match first, then "<ancestor>.*"
// walking from the category towards its root, then general wildcards in
// order of how many literal segments they have. With app.* at WARN and
// app.network at DEBUG, "app.network" resolves to DEBUG and "app.cache" to
// WARN. A category with no match uses the gate's effective level.
package category
