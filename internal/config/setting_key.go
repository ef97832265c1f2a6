package config

// Keys recognized in the app_settings table. Values stored there override the
// environment defaults without a restart.
const (
	SettingExpectedPresentDays = "expected_present_days"
	SettingAssignmentFullMarks = "assignment_full_marks"
)
