package model

// FeatureVector is the flat record consumed by the external scoring model.
// The JSON field names are part of that model's training schema and must not
// be renamed.
type FeatureVector struct {
	Gender                    int     `json:"Gender"`
	StudyHoursPerWeek         float64 `json:"Study_Hours_per_Week"`
	AttendanceRate            float64 `json:"Attendance_Rate"`
	PastExamScores            float64 `json:"Past_Exam_Scores"`
	ParentalEducationLevel    int     `json:"Parental_Education_Level"`
	InternetAccessAtHome      int     `json:"Internet_Access_at_Home"`
	ExtracurricularActivities int     `json:"Extracurricular_Activities"`
	InternalMarks             float64 `json:"Internal_Marks"`
	AssignmentSubmissionRate  float64 `json:"Assignment_Submission_Rate"`
	InternalAssessmentMarks   float64 `json:"Internal_Assessment_Marks"`
}

// AttendanceSummary is the human-facing attendance block of the dashboard.
type AttendanceSummary struct {
	PresentDays  int     `json:"present_days"`
	ExpectedDays int     `json:"expected_days"`
	Percentage   float64 `json:"percentage"`
}

// AssignmentSummary is the human-facing assignment block of the dashboard.
type AssignmentSummary struct {
	AverageMark      float64 `json:"average_mark"`
	TotalAssignments int     `json:"total_assignments"`
	Percentage       float64 `json:"percentage"`
	Unsubmitted      int     `json:"unsubmitted"`
}

// StudentDashboard is the percentage-form summary rendered for humans. All
// percentages are the 0–1 metrics scaled by 100.
type StudentDashboard struct {
	Enrolled           bool              `json:"enrolled"`
	CurrentClass       int               `json:"current_class,omitempty"`
	Attendance         AttendanceSummary `json:"attendance"`
	Assignment         AssignmentSummary `json:"assignment"`
	InternalMark       float64           `json:"internal_mark"`
	PastMark           float64           `json:"past_mark"`
	InternalAssessment float64           `json:"internal_assessment"`
	ClassParticipation float64           `json:"class_participation"`
}
