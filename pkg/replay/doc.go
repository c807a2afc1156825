// Package replay implements a prioritized experience replay buffer for
// reinforcement-learning training loops, after Schaul et al.,
// "Prioritized Experience Replay" (arXiv:1511.05952).
//
// A Buffer pairs a fixed-capacity circular transition store with a sum
// tree over per-slot priorities. Transitions are written with the
// maximum priority observed so far, sampled in stratified proportion to
// priority^alpha, and returned together with importance-sampling
// weights normalized so the largest weight in a batch is exactly 1.
// After a learning step the caller feeds fresh priorities (typically
// TD-error magnitudes) back through UpdatePriorities.
//
// Every exported operation takes the buffer's lock, so one Buffer may
// be shared between actor goroutines storing transitions and a learner
// goroutine sampling and updating priorities.
package replay
