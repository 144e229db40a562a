package shared

const (
	UserID = "user_id"

	CourseStatusInProgress = "in_progress"
	CourseStatusCompleted  = "completed"

	// GradeDetailsDelimiter joins per-lesson segments in the persisted
	// grade details string. Admin tooling splits on this exact value.
	GradeDetailsDelimiter = " | "
	GradeDetailsSeparator = ": "
	GradeNotAttempted     = "-"

	// PassThresholdPercent is the quiz pass mark. A lesson passes when
	// score >= ceil(threshold * totalQuestions / 100).
	PassThresholdPercent = 70

	// DefaultTimeLimitMinutes applies when a lesson carries no time limit.
	DefaultTimeLimitMinutes = 10

	// VisibilityViolationLimit is the number of focus-loss events that
	// forfeits an active quiz session.
	VisibilityViolationLimit = 3
)
