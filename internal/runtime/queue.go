package runtime

import "github.com/aretw0/handik/pkg/domain"

// Request is a generator asking to take a hand over.
type Request struct {
	Hand  domain.Hand
	State domain.HandState
}

// RequestQueue buffers generator requests until the next frame drains them.
type RequestQueue struct {
	pending []Request
}

// RequestToUse implements domain.RequestSink.
func (q *RequestQueue) RequestToUse(hand domain.Hand, state domain.HandState) {
	q.pending = append(q.pending, Request{Hand: hand, State: state})
}

// Drain calls fn for every pending request in arrival order and empties the
// queue. Requests pushed by fn are kept for the next drain.
func (q *RequestQueue) Drain(fn func(Request)) {
	batch := q.pending
	q.pending = nil
	for _, r := range batch {
		fn(r)
	}
}

// Len returns the number of pending requests.
func (q *RequestQueue) Len() int {
	return len(q.pending)
}
