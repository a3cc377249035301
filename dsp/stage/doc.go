// Package stage provides the building blocks of a block-based effect chain:
// per-channel filters with persistent state, gains and memoryless
// waveshapers. Every stage processes planar blocks in place and never
// allocates after construction.
package stage
