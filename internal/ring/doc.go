// Package ring implements the fixed-capacity history buffer behind fastqueue.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// A RingBuffer keeps the N most recently appended values. Logical index 0 is
// the newest value and Len()-1 the oldest; appending to a full buffer evicts
// the oldest value. Occupancy is tracked by an explicit counter, so a wrapped
// full buffer and a wrapped partial buffer are never confused.
//
// RingBuffer is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves (see package facade).
package ring
