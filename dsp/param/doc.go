// Package param holds named, range-checked parameters that a control
// goroutine writes and an audio goroutine reads without locks.
//
// Each Parameter keeps its value in a single atomic 64-bit slot. Writers
// clamp to the declared range (and round discrete parameters to their
// step), so readers always observe an in-range value. A Set groups
// parameters by id and serializes them to a small versioned binary format.
package param
