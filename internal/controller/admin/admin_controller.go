package admin

import (
	"net/http"

	"github.com/Hazemprogammar/SudanEdu/internal/controller"
	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{adminService: adminService}
}

// CreateExam godoc
// @Summary (Admin) Create an exam with its questions
// @Description Teachers and admins only. Total points are computed from the question weights.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.ExamCreateRequest true "Exam and questions"
// @Success 201 {object} dto.ExamResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid exam or question data"
// @Failure 403 {object} dto.ErrorResponse "Caller may not author exams"
// @Router /admin/exams [post]
func (c *AdminController) CreateExam(ctx *gin.Context) {
	var req dto.ExamCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateExam: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	exam, err := c.adminService.CreateExam(req)
	if err != nil {
		log.Warn().Err(err).Str("title", req.Title).Msg("Admin CreateExam: Service error")
		status := controller.StatusFromError(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		ctx.JSON(status, dto.ErrorResponse{Message: "Failed to create exam", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusCreated, exam)
}

// AddQuestion godoc
// @Summary (Admin) Add a question to an existing exam
// @Tags Admin
// @Accept json
// @Produce json
// @Param exam_id path string true "Exam ID"
// @Param request body dto.AddQuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 403 {object} dto.ErrorResponse "Caller may not author exams"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/questions [post]
func (c *AdminController) AddQuestion(ctx *gin.Context) {
	var req dto.AddQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin AddQuestion: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	question, err := c.adminService.AddQuestion(ctx.Param("exam_id"), req)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

// PromoteUser godoc
// @Summary (Admin) Change a user's role
// @Description Admins only. The role must be one of the known role values.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.PromoteUserRequest true "Target user and new role"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Unknown role"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/promote [post]
func (c *AdminController) PromoteUser(ctx *gin.Context) {
	var req dto.PromoteUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin PromoteUser: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.adminService.PromoteUser(req)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// GetDashboardStats godoc
// @Summary (Admin) Revenue dashboard figures
// @Tags Admin
// @Produce json
// @Param actor_id query string true "Admin user ID"
// @Success 200 {object} dto.DashboardStatsResponse
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Router /admin/dashboard [get]
func (c *AdminController) GetDashboardStats(ctx *gin.Context) {
	actorID := ctx.Query("actor_id")
	if actorID == "" {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "actor_id query parameter is required"})
		return
	}

	stats, err := c.adminService.DashboardStats(actorID)
	if err != nil {
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
