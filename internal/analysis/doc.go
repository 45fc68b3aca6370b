// Package analysis post-processes recorded trajectories: an FFT over
// the post-contact depth series recovers the bobbing frequency of a
// buoyant body settling to its flotation depth.
package analysis
