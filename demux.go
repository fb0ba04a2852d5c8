package kafkaproducer

// demuxOuterGroup resolves every distinct submission referenced by msgs,
// which are exactly the routed messages processOuterGroup fanned out for
// one (acks, timeout) outer group.
//
// groupErr is the first error observed from any of the group's inner-group
// sends, or nil if every one of them succeeded. Per §4.E, a faulted task
// fails the whole outer group: every submission in it resolves with the
// same error, not just the ones whose own messages happened to go out on
// the failing connection. On success every submission is joined against
// the union of every inner group's responses in this outer group, by topic
// name - see DESIGN.md for why the join is topic-only rather than
// topic+partition.
func (p *Producer) demuxOuterGroup(msgs []routedMessage, responses []PartitionResponse, groupErr error) {
	seen := make(map[*Submission]bool, len(msgs))
	var subs []*Submission
	for _, m := range msgs {
		if !seen[m.submission] {
			seen[m.submission] = true
			subs = append(subs, m.submission)
		}
	}

	if groupErr != nil {
		err := newSendFailedError(Route{}, groupErr)
		for _, sub := range subs {
			sub.completion.resolve(Result{Err: err})
		}
		return
	}

	for _, sub := range subs {
		matched := make([]PartitionResponse, 0, len(responses))
		for _, r := range responses {
			if r.Topic == sub.Topic {
				matched = append(matched, r)
			}
		}
		sub.completion.resolve(Result{Responses: matched})
	}
}
