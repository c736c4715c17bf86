package dto

// StartAttemptRequest begins an exam attempt for a student. The student ID is
// carried in the body until the auth provider supplies it.
type StartAttemptRequest struct {
	StudentID string `json:"student_id" binding:"required"`
}

// SaveAnswersRequest records or overwrites answers on an open attempt.
type SaveAnswersRequest struct {
	StudentID string            `json:"student_id" binding:"required"`
	Answers   map[string]string `json:"answers" binding:"required"`
}

// SubmitAttemptRequest finalizes an attempt. Answers is an optional final
// snapshot merged over previously saved answers before scoring.
type SubmitAttemptRequest struct {
	StudentID string            `json:"student_id" binding:"required"`
	Answers   map[string]string `json:"answers"`
}

// PurchasePointsRequest credits purchased points. Payment is assumed to have
// already cleared with the external gateway.
type PurchasePointsRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Amount      int    `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
}

type TransferPointsRequest struct {
	FromUserID  string `json:"from_user_id" binding:"required"`
	ToUserID    string `json:"to_user_id" binding:"required"`
	Amount      int    `json:"amount" binding:"required,gt=0"`
	Description string `json:"description"`
}

type RegisterReferralRequest struct {
	NewUserID string `json:"new_user_id" binding:"required"`
}

type PromoteUserRequest struct {
	ActorID string `json:"actor_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	NewRole string `json:"new_role" binding:"required"`
}
