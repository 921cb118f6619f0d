// Package pipeline runs the per-file steps of zhproof.
//
// A Job is one file on its way through a Pipeline: it is read, parsed into
// a lossless markup tree, rewritten, converted or reviewed, and finally
// rendered back to disk. Each stage is a Step that receives the Job and
// can modify it.
//
// clean and pr run their pipelines one file at a time because they may
// stop for the proofreader. convert has no interaction and runs its
// pipelines concurrently through a BatchProcessor built on errgroup.
package pipeline
