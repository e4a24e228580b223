// Package sampledata holds the in-memory data set served by the sample-data
// HTTP service: a mutable list of posts and the CPU-bound "slow" computation.
//
// Nothing is persisted; a restart returns to the seed posts.
package sampledata
