package district

import (
	"errors"
	"fmt"
	"time"

	"github.com/edugzlez/electosim/apportion"
	"github.com/edugzlez/electosim/types"
)

const (
	scopeGlobal = "global"
	scopeRegion = "region"
)

// seatWriter writes one candidacy's seats back into the tree.
type seatWriter func(candidacy types.CandidacyID, seats uint32) error

// apportionSnapshot runs the election for d over snapshot and writes every
// seat count back. Snapshot rows hold the computed seats afterwards.
//
// No candidacy passing the cutoff is not an error: every seat is written as zero.
func apportionSnapshot(d types.District, snapshot []types.Result, write seatWriter) (bool, error) {
	election := apportion.NewElection(types.AsCandidates(snapshot), d)
	empty := false
	if err := election.Compute(); err != nil {
		if !errors.Is(err, types.ErrEmptyResults) {
			return false, fmt.Errorf("apportion %s: %w", d, err)
		}
		empty = true
	}

	for _, r := range snapshot {
		if err := write(r.Candidacy, r.SeatCount); err != nil {
			return empty, fmt.Errorf("write seats of candidacy %d: %w", r.Candidacy, err)
		}
	}

	return empty, nil
}

// scopeState remembers the fingerprint of the last write-back of one scope.
type scopeState struct {
	fingerprint uint64
	valid       bool
}

// recomputer carries what Unique and Multi share: diagnostics and the
// recompute-or-skip decision.
type recomputer struct {
	opts options
}

// run recomputes one scope unless its fingerprint matches state.
//
// Parameters:
//   - scope: Metrics label
//   - attrs: Extra log key-value pairs identifying the scope
//   - d: District setup
//   - read: Returns the scope's current snapshot
//   - write: Writes one seat count back
//   - state: Last fingerprint of the scope, updated on success
func (r *recomputer) run(
	scope string,
	attrs []any,
	d types.District,
	read func() ([]types.Result, error),
	write seatWriter,
	state *scopeState,
) error {
	snapshot, err := read()
	if err != nil {
		return err
	}
	if len(snapshot) == 0 {
		r.opts.logger.Debug("district has no candidacies, skipping", attrs...)
		return nil
	}
	if state.valid && state.fingerprint == fingerprint(d, snapshot) {
		r.opts.metrics.RecordRecomputeSkipped(scope)
		return nil
	}

	start := time.Now()
	empty, err := apportionSnapshot(d, snapshot, write)
	r.opts.metrics.RecordRecompute(scope, time.Since(start).Seconds(), err == nil)
	if err != nil {
		state.valid = false
		return err
	}
	if empty {
		r.opts.logger.Warn("no candidacy passes the cutoff, seats cleared", append(attrs, "district", d.String())...)
	}

	// Fingerprint what was written so an identical later event is skipped.
	state.fingerprint = fingerprint(d, snapshot)
	state.valid = true
	r.opts.logger.Debug("district recomputed", append(attrs, "district", d.String())...)

	return nil
}
