// Package cli is postit's interactive front end: a line-oriented command
// loop over stdin/stdout that registers accounts, logs in by signing a
// challenge, and creates and lists posts.
//
// The loop is started with App.Run, which returns when the user exits,
// input ends or the session deadline in ctx passes.
package cli
