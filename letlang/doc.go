// Package letlang is a small settings language built on the parse engine:
//
//	let server.port = 8080;
//	let server.hosts = ["a.example", "b.example",];
//	let ratio = 0.75;
//	let debug = false;
//	let fallback = server.port;
//
// Paths are dotted identifiers, values are scalars or bracketed lists with
// an optional trailing comma.
package letlang
