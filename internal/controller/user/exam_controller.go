package user

import (
	"net/http"

	"github.com/Hazemprogammar/SudanEdu/internal/controller"
	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ExamController struct {
	examService    service.ExamService
	attemptService service.AttemptService
}

func NewExamController(examService service.ExamService, attemptService service.AttemptService) *ExamController {
	return &ExamController{examService: examService, attemptService: attemptService}
}

// GetExam godoc
// @Summary Get exam metadata
// @Description Returns exam title, duration and total points. Questions are served separately.
// @Tags Exams & Attempts
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {object} dto.ExamResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id} [get]
func (c *ExamController) GetExam(ctx *gin.Context) {
	exam, err := c.examService.GetExam(ctx.Param("exam_id"))
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

// ListCourseExams godoc
// @Summary List exams for a course
// @Tags Exams & Attempts
// @Produce json
// @Param course_id path string true "Course ID"
// @Success 200 {array} dto.ExamResponse
// @Router /courses/{course_id}/exams [get]
func (c *ExamController) ListCourseExams(ctx *gin.Context) {
	exams, err := c.examService.ListByCourse(ctx.Param("course_id"))
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve exams", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// ListQuestions godoc
// @Summary List exam questions for taking the exam
// @Description Questions are returned in presentation order without correct answers.
// @Tags Exams & Attempts
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Success 200 {array} dto.StudentQuestionResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id}/questions [get]
func (c *ExamController) ListQuestions(ctx *gin.Context) {
	questions, err := c.examService.ListQuestions(ctx.Param("exam_id"))
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// StartAttempt godoc
// @Summary Start an exam attempt
// @Description Creates an open attempt with an empty answer sheet. The countdown deadline is derived server-side from the start time and exam duration.
// @Tags Exams & Attempts
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param request body dto.StartAttemptRequest true "Student starting the attempt"
// @Success 201 {object} dto.ExamAttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "An open attempt already exists"
// @Router /exams/{exam_id}/attempts [post]
func (c *ExamController) StartAttempt(ctx *gin.Context) {
	var req dto.StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartAttempt: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.attemptService.StartAttempt(req.StudentID, ctx.Param("exam_id"))
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// SaveAnswers godoc
// @Summary Record or update answers on an open attempt
// @Description Merges the submitted answers into the attempt; later writes per question overwrite earlier ones. Rejected once the attempt is completed.
// @Tags Exams & Attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param request body dto.SaveAnswersRequest true "Incremental answer map"
// @Success 200 {object} dto.ExamAttemptResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt owned by another student"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /attempts/{attempt_id}/answers [patch]
func (c *ExamController) SaveAnswers(ctx *gin.Context) {
	var req dto.SaveAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveAnswers: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	attempt, err := c.attemptService.SaveAnswers(req.StudentID, ctx.Param("attempt_id"), req.Answers)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// SubmitAttempt godoc
// @Summary Submit an attempt for scoring
// @Description Finalizes the attempt exactly once, scores the recorded answers, credits the score to the wallet and queues a grade notification. A second submission is rejected.
// @Tags Exams & Attempts
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param request body dto.SubmitAttemptRequest true "Optional final answer snapshot"
// @Success 200 {object} dto.SubmitResultResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt owned by another student"
// @Failure 409 {object} dto.ErrorResponse "Attempt already completed"
// @Router /attempts/{attempt_id}/submit [post]
func (c *ExamController) SubmitAttempt(ctx *gin.Context) {
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.attemptService.Submit(req.StudentID, ctx.Param("attempt_id"), req.Answers)
	if err != nil {
		log.Warn().Err(err).Str("attemptID", ctx.Param("attempt_id")).Msg("SubmitAttempt: Service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// ListMyAttempts godoc
// @Summary List the student's exam attempts
// @Description Most recent first, open and completed alike.
// @Tags Exams & Attempts
// @Produce json
// @Param student_id query string true "Student ID"
// @Success 200 {array} dto.ExamAttemptResponse
// @Router /my-attempts [get]
func (c *ExamController) ListMyAttempts(ctx *gin.Context) {
	studentID := ctx.Query("student_id")
	if studentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required"})
		return
	}

	attempts, err := c.attemptService.ListAttempts(studentID)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve attempts", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}

// GetAttempt godoc
// @Summary Get an exam attempt
// @Tags Exams & Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param student_id query string true "Owning student ID"
// @Success 200 {object} dto.ExamAttemptResponse
// @Failure 403 {object} dto.ErrorResponse "Attempt owned by another student"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *ExamController) GetAttempt(ctx *gin.Context) {
	studentID := ctx.Query("student_id")
	if studentID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "student_id query parameter is required"})
		return
	}

	attempt, err := c.attemptService.GetAttempt(studentID, ctx.Param("attempt_id"))
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}
