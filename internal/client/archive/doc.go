// Package archive drives bulk downloads through server side archive
// jobs.
//
// A Poller runs one job through the states
//
//	Creating -> Polling -> Completed | Failed | TimedOut
//
// It creates the job, polls its status at a fixed interval until the
// server reports COMPLETED or FAILED or the retry budget runs out, and on
// completion hands every archive file to a sink in parallel. File
// downloads are best effort: a failing file is logged and counted but
// does not fail the job or stop the other files.
//
// Waiting goes through a clock.Clock so tests can run the full retry
// budget without sleeping.
package archive
