package cli

import (
	"time"

	"github.com/briandowns/spinner"
)

const (
	// TruncationLimit is the digit threshold from which a result is truncated
	// in standard output to avoid cluttering the terminal.
	TruncationLimit = 100
	// DisplayEdges specifies the number of digits to display at the beginning
	// and end of a truncated number.
	DisplayEdges = 25
	// SpinnerRefreshRate defines the refresh frequency of the busy spinner.
	SpinnerRefreshRate = 200 * time.Millisecond
)

// Spinner abstracts the terminal busy indicator so evaluation code can
// be tested without animating a real one.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts the spinner library to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// withSpinner runs fn while a spinner with the given message animates.
// The spinner is stopped before returning so the result line is not
// interleaved with the animation.
func withSpinner(msg string, fn func() error) error {
	sp := newSpinner()
	sp.UpdateSuffix(" " + msg)
	sp.Start()
	defer sp.Stop()
	return fn()
}
