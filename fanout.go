package kafkaproducer

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// produceAndSend takes one dispatch-loop batch, resolves routes, and fans
// each (acks, timeout) outer group out independently. A submission with no
// messages never needs a route or a connection - it resolves immediately
// with an empty response list (§3, §4.D). Submissions that fail to route
// resolve immediately with an error, since they never join any outer
// group's send. Everything else is handed to processOuterGroup, which owns
// resolving every submission it's given exactly once.
func (p *Producer) produceAndSend(batch []*Submission) {
	var toRoute []*Submission
	for _, sub := range batch {
		if len(sub.Messages) == 0 {
			sub.completion.resolve(Result{Responses: []PartitionResponse{}})
			continue
		}
		toRoute = append(toRoute, sub)
	}
	if len(toRoute) == 0 {
		return
	}

	routed, failed := p.routeMessages(toRoute)
	for sub, err := range failed {
		sub.completion.resolve(Result{Err: newSendFailedError(Route{}, err)})
	}
	if len(routed) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, msgs := range groupByOuter(routed) {
		msgs := msgs
		key := groupKey{acks: msgs[0].submission.Acks, timeout: timeoutMs(msgs[0].submission.Timeout)}
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.processOuterGroup(key, msgs)
		}()
	}
	wg.Wait()
}

// processOuterGroup issues one ProduceRequest per inner group - one per
// distinct (route, topic, codec), per §4.D - and treats the whole outer
// group as a single unit of failure: if any inner-group send errors, every
// submission in the group resolves with that error; if every inner-group
// send succeeds, every submission in the group is resolved by joining
// against the union of all of the group's responses, per §4.E and §9's
// "identical response sublists" contract. It never returns until every
// submission it was given has been resolved.
func (p *Producer) processOuterGroup(key groupKey, msgs []routedMessage) {
	inner := groupByInner(msgs)

	var eg errgroup.Group
	var mu sync.Mutex
	var responses []PartitionResponse

	start := time.Now()
	for ik, groupMsgs := range inner {
		ik, groupMsgs := ik, groupMsgs
		eg.Go(func() error {
			req := buildInnerRequest(key, ik, groupMsgs)
			resCh := ik.conn.SendAsync(context.Background(), req)

			// Active messages are considered handed off the instant the
			// send is issued, not once a response is heard back - see the
			// Design Notes on the active counter.
			p.active.sub(req.messageCount())
			p.metrics.activeGauge.Update(p.active.get())

			res := <-resCh
			if res.Err != nil {
				p.metrics.sendFailures.Mark(1)
				return res.Err
			}

			mu.Lock()
			responses = append(responses, res.Responses...)
			mu.Unlock()
			return nil
		})
	}

	err := eg.Wait()
	p.metrics.sendLatency.Update(time.Since(start).Nanoseconds())
	p.demuxOuterGroup(msgs, responses, err)
}

// routeMessages resolves a Route for every message in every submission of
// batch. A submission is routed all-or-nothing: the first routing failure
// for one of its messages fails the whole submission and stops routing the
// rest of it, so a submission never gets a Future half-resolved by two
// independent code paths.
func (p *Producer) routeMessages(batch []*Submission) ([]routedMessage, map[*Submission]error) {
	routed := make([]routedMessage, 0, len(batch))
	failed := make(map[*Submission]error)

	for _, sub := range batch {
		local := make([]routedMessage, 0, len(sub.Messages))
		var routeErr error
		for _, msg := range sub.Messages {
			route, err := p.router.SelectBrokerRoute(sub.Topic, msg.Key)
			if err != nil {
				routeErr = err
				break
			}
			local = append(local, routedMessage{submission: sub, record: msg, route: route})
		}
		if routeErr != nil {
			failed[sub] = routeErr
			continue
		}
		routed = append(routed, local...)
	}

	return routed, failed
}

func timeoutMs(d time.Duration) int32 {
	return int32(d / time.Millisecond)
}

// groupByOuter buckets routed messages by the (acks, timeout) pair that
// determines a shared wire request header.
func groupByOuter(msgs []routedMessage) map[groupKey][]routedMessage {
	out := make(map[groupKey][]routedMessage)
	for _, m := range msgs {
		k := groupKey{acks: m.submission.Acks, timeout: timeoutMs(m.submission.Timeout)}
		out[k] = append(out[k], m)
	}
	return out
}

// groupByInner buckets an outer group's messages by (route, topic, codec) -
// every inner group becomes exactly one ProduceRequest with a single
// Payload, never bundled with any other inner group's messages.
func groupByInner(msgs []routedMessage) map[innerKey][]routedMessage {
	out := make(map[innerKey][]routedMessage)
	for _, m := range msgs {
		ik := innerKey{partition: m.route.PartitionID, conn: m.route.Connection, topic: m.submission.Topic, codec: m.submission.Codec}
		out[ik] = append(out[ik], m)
	}
	return out
}

// buildInnerRequest renders one inner group into the single-payload
// ProduceRequest that is sent to its connection.
func buildInnerRequest(key groupKey, ik innerKey, msgs []routedMessage) ProduceRequest {
	records := make([]Record, 0, len(msgs))
	for _, m := range msgs {
		records = append(records, m.record)
	}
	return ProduceRequest{
		Acks:      key.acks,
		TimeoutMs: key.timeout,
		Payloads: []Payload{{
			Topic:     ik.topic,
			Partition: ik.partition,
			Codec:     ik.codec,
			Messages:  records,
		}},
	}
}
