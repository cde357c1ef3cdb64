// Package solver implements the fetch client. Documents are retrieved
// through a local FlareSolverr instance, which handles the anti-bot
// challenge pages HLTV serves to plain HTTP clients.
package solver
