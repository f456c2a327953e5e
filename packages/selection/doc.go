// Package selection decides which test files a run executes.
//
// Exactly one selection mode is active per invocation: an explicit file
// list, the integration suite, the unit suite (optionally restricted to
// the lab-safe subset), a randomized glob suite, or the default suite.
// Randomized selection is deterministic for a given seed so a run can be
// reproduced exactly.
package selection
