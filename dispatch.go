package kafkaproducer

// dispatchLoop is the single long-running consumer of the ingress queue
// (§4.C). It runs until the queue is sealed and drained, taking one batch
// at a time, merging in any residual sealed-queue items on cancellation,
// and handing each non-empty batch to produceAndSend. A panic or error
// inside produceAndSend is isolated to that batch: it is logged and
// swallowed so the loop can continue on to the next one.
func (p *Producer) dispatchLoop() {
	defer close(p.loopDone)

	Logger.Println("kafkaproducer: dispatch loop starting")

	for !p.ingress.IsCompleted() {
		batch, err := p.ingress.TakeBatch(p.cfg.BatchSize, p.cfg.BatchDelayTime, p.stopCh)
		if err != nil {
			// Cancelled: fall through and check for residual sealed-queue
			// items below rather than looping straight back around, so a
			// stop during TakeBatch still flushes what's left.
			batch = nil
		}

		if p.ingress.IsSealed() && p.ingress.Count() > 0 {
			tail := p.ingress.Drain()
			batch = append(batch, tail...)
		}

		if len(batch) > 0 {
			p.metrics.dispatchCycle.Mark(1)
			p.metrics.batchSize.Update(int64(len(batch)))
			p.safeProduceAndSend(batch)
		}
	}

	Logger.Println("kafkaproducer: dispatch loop shut down")
}

// safeProduceAndSend recovers any panic from produceAndSend unconditionally
// - this is the dispatch-internal error class from §7, which must never
// take the loop down regardless of whether PanicHandler is configured.
func (p *Producer) safeProduceAndSend(batch []*Submission) {
	defer func() {
		if r := recover(); r != nil {
			Logger.Printf("kafkaproducer: recovered panic in produceAndSend: %v", r)
			if PanicHandler != nil {
				PanicHandler(r)
			}
		}
	}()

	p.produceAndSend(batch)
}
