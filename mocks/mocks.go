// Package mocks provides fake Router and Connection implementations for
// testing code built on top of kafkaproducer, in the style of sarama's own
// mocks package: you set expectations up front, drive the producer, and the
// mock reports a test failure the moment its behavior diverges from what
// was expected.
package mocks

import kafkaproducer "github.com/nrandell/kafkaproducer"

// ErrorReporter is the subset of *testing.T this package calls into. It
// lets expectation violations surface as test failures without importing
// the testing package into non-test code.
type ErrorReporter interface {
	Errorf(string, ...interface{})
}

var _ kafkaproducer.Router = (*Router)(nil)
var _ kafkaproducer.Connection = (*Connection)(nil)
var _ kafkaproducer.MetadataQueries = (*Metadata)(nil)
