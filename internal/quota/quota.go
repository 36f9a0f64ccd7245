// Package quota provides the success counter shared by every concurrent
// download worker. The counter gates whether new work starts and records how
// each attempt ended.
package quota

// Counter is safe for concurrent use from any number of workers.
//
// Count and RecordAttempt are deliberately two separate operations rather
// than one atomic check-and-reserve: workers read the count before starting
// and record the outcome after finishing, so the success count can
// transiently overshoot a configured maximum by up to the number of in-flight
// workers minus one ("soft cap").
type Counter interface {
	// Count returns the number of successful downloads recorded so far.
	Count() int
	// RecordAttempt records that an attempt finished, incrementing the
	// success count iff succeeded.
	RecordAttempt(succeeded bool)
}
