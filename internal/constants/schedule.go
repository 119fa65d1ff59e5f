package constants

const (
	// DefaultWindowSize is the number of challenge days generated before any
	// persisted record pushes the window further out.
	DefaultWindowSize = 55
	// BaseDays is the length of the original challenge; later days are
	// flagged as extended.
	BaseDays = 55
	// DefaultSafetyMargin is the number of empty days kept after the highest
	// persisted day number.
	DefaultSafetyMargin = 10
	// DefaultDeletableAfter is the last day that cannot be removed while it is
	// still a template.
	DefaultDeletableAfter = 55

	TemplateIDPrefix   = "template-day-"
	PendingIDPrefix    = "pending-day-"
	DefaultTitleFormat = "Question for Day %d"
	DefaultDescription = "Description to be added later"
	DefaultLink        = "https://leetcode.com/problemset/"

	// MaxSurfacedErrors is how many row errors an import reports before
	// collapsing the rest into a count.
	MaxSurfacedErrors = 5

	// Settings keys
	SettingWindowSize     = "window_size"
	SettingSafetyMargin   = "safety_margin"
	SettingDeletableAfter = "deletable_after"
)
