package pipeline

import "github.com/google/uuid"

// JobState tracks a discovered input through the pipeline.
type JobState string

const (
	JobDiscovered JobState = "discovered"
	JobDebouncing JobState = "debouncing"
	JobBuilding   JobState = "building"
	JobRendering  JobState = "rendering"
	JobDone       JobState = "done"
	JobFailed     JobState = "failed"
)

// Job is the ephemeral per-input unit of work. It is created on the first
// stable sighting of an input file and destroyed once done or failed; a done
// job's path enters the pipeline's seen-set and is never reprocessed.
type Job struct {
	ID        uuid.UUID
	Path      string
	State     JobState
	Artifacts []string
}
