package hermes

const (
	StreamName   = "FITMENT_EVENTS"
	StreamMaxAge = "720h" // 30 days

	subjectRoot = "talent.match"
)

// StreamSubjects are captured by the events stream.
var StreamSubjects = []string{subjectRoot + ".>"}

func SubjectMatchCompleted(runID string) string { return subjectRoot + "." + runID + ".completed" }
func SubjectMatchFailed(runID string) string    { return subjectRoot + "." + runID + ".failed" }
