package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type QuestionResponse struct {
	ID            string   `json:"id"`
	ExamID        string   `json:"exam_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Points        int      `json:"points"`
	Order         int      `json:"order"`
}

// StudentQuestionResponse is the exam-taking view; it never carries the
// designated correct answer.
type StudentQuestionResponse struct {
	ID       string   `json:"id"`
	ExamID   string   `json:"exam_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Points   int      `json:"points"`
	Order    int      `json:"order"`
}

type ExamResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	CourseID    string             `json:"course_id,omitempty"`
	Duration    int                `json:"duration"`
	TotalPoints int                `json:"total_points"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

type ExamAttemptResponse struct {
	ID          string            `json:"id"`
	StudentID   string            `json:"student_id"`
	ExamID      string            `json:"exam_id"`
	Answers     map[string]string `json:"answers"`
	Score       int               `json:"score"`
	TotalPoints int               `json:"total_points"`
	StartedAt   time.Time         `json:"started_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	// Deadline is derived from the start time and the exam duration. It is
	// informational for countdown rendering; the server applies no hard cutoff.
	Deadline time.Time `json:"deadline"`
}

type SubmitResultResponse struct {
	AttemptID   string    `json:"attempt_id"`
	Score       int       `json:"score"`
	TotalPoints int       `json:"total_points"`
	CompletedAt time.Time `json:"completed_at"`
}

type BalanceResponse struct {
	Balance int `json:"balance"`
}

type PointsTransactionResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      int       `json:"amount"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	ReferenceID *string   `json:"reference_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReferralResponse struct {
	ID           string    `json:"id"`
	ReferrerID   string    `json:"referrer_id"`
	ReferredID   string    `json:"referred_id"`
	PointsEarned int       `json:"points_earned"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReferralStatsResponse struct {
	TotalInvites      int64 `json:"total_invites"`
	SuccessfulInvites int64 `json:"successful_invites"`
	PointsEarned      int64 `json:"points_earned"`
}

type NotificationResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          string    `json:"role"`
	PointsBalance int       `json:"points_balance"`
	ReferralCode  string    `json:"referral_code"`
	CreatedAt     time.Time `json:"created_at"`
}

type DashboardStatsResponse struct {
	TotalPointsPurchased int64 `json:"total_points_purchased"`
	TotalRevenue         int64 `json:"total_revenue"`
}
