package dto

// QuestionCreateRequest is used standalone and within ExamCreateRequest.
type QuestionCreateRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Points        int      `json:"points"` // defaults to 1
	Order         int      `json:"order"`
}

// ExamCreateRequest creates an exam together with its questions.
type ExamCreateRequest struct {
	ActorID   string                  `json:"actor_id" binding:"required"`
	Title     string                  `json:"title" binding:"required"`
	CourseID  string                  `json:"course_id"`
	Duration  int                     `json:"duration" binding:"required,gt=0"` // minutes
	Questions []QuestionCreateRequest `json:"questions" binding:"dive"`
}

// AddQuestionRequest appends a question to an existing exam.
type AddQuestionRequest struct {
	ActorID  string                `json:"actor_id" binding:"required"`
	Question QuestionCreateRequest `json:"question" binding:"required"`
}
