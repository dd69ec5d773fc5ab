package types

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be cheap: every method is called synchronously on
// the mutation path.
//
// This interface composes smaller, domain-focused interfaces.
type MetricsCollector interface {
	SystemMetrics
	DistrictMetrics
}

// SystemMetrics defines metrics for the System facade.
type SystemMetrics interface {
	// RecordEvent records one emitted event.
	//
	// Parameters:
	//   - kind: Event kind dispatched to the configuration
	RecordEvent(kind EventKind)

	// RecordRegionCount sets the current number of regions (gauge metric).
	RecordRegionCount(count int)

	// RecordCandidacyCount sets the current number of candidacies (gauge metric).
	RecordCandidacyCount(count int)
}

// DistrictMetrics defines metrics for district recomputation.
type DistrictMetrics interface {
	// RecordRecompute records one recompute of a district scope.
	//
	// Parameters:
	//   - scope: "global" or "region"
	//   - duration: Time taken in seconds
	//   - success: false when the policy or a seat write-back failed
	RecordRecompute(scope string, duration float64, success bool)

	// RecordRecomputeSkipped records a recompute avoided because the scope's
	// inputs were unchanged since the last write-back.
	//
	// Parameters:
	//   - scope: "global" or "region"
	RecordRecomputeSkipped(scope string)
}
