package service

import (
	"fmt"
	"slices"

	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/Hazemprogammar/SudanEdu/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AdminService covers exam authoring and account administration.
type AdminService interface {
	CreateExam(req dto.ExamCreateRequest) (*dto.ExamResponse, error)
	AddQuestion(examID string, req dto.AddQuestionRequest) (*dto.QuestionResponse, error)
	PromoteUser(req dto.PromoteUserRequest) (*dto.UserResponse, error)
	DashboardStats(actorID string) (*dto.DashboardStatsResponse, error)
}

type adminService struct {
	userRepo        repository.UserRepository
	examRepo        repository.ExamRepository
	questionRepo    repository.QuestionRepository
	transactionRepo repository.PointsTransactionRepository
	db              *gorm.DB
}

func NewAdminService(
	userRepo repository.UserRepository,
	examRepo repository.ExamRepository,
	questionRepo repository.QuestionRepository,
	transactionRepo repository.PointsTransactionRepository,
	db *gorm.DB,
) AdminService {
	return &adminService{
		userRepo:        userRepo,
		examRepo:        examRepo,
		questionRepo:    questionRepo,
		transactionRepo: transactionRepo,
		db:              db,
	}
}

func (s *adminService) requireRole(actorID string, allowed func(model.Role) bool) (*model.User, error) {
	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	if !allowed(actor.Role) {
		return nil, fmt.Errorf("user %s with role %s: %w", actorID, actor.Role, ErrForbidden)
	}
	return actor, nil
}

func buildQuestion(examID string, req dto.QuestionCreateRequest) (*model.Question, error) {
	if !slices.Contains(req.Options, req.CorrectAnswer) {
		return nil, fmt.Errorf("correct answer %q is not among the options for question %q", req.CorrectAnswer, req.Question)
	}
	points := req.Points
	if points == 0 {
		points = 1
	}
	if points < 0 {
		return nil, fmt.Errorf("question %q has a negative point value", req.Question)
	}
	return &model.Question{
		ExamID:        examID,
		Question:      req.Question,
		Options:       req.Options,
		CorrectAnswer: req.CorrectAnswer,
		Points:        points,
		Order:         req.Order,
	}, nil
}

func (s *adminService) CreateExam(req dto.ExamCreateRequest) (*dto.ExamResponse, error) {
	if _, err := s.requireRole(req.ActorID, model.Role.CanAuthorExams); err != nil {
		return nil, err
	}

	orderSeen := make(map[int]bool)
	totalPoints := 0
	var questions []model.Question
	for _, qReq := range req.Questions {
		if qReq.Order != 0 && orderSeen[qReq.Order] {
			return nil, fmt.Errorf("duplicate question order %d", qReq.Order)
		}
		orderSeen[qReq.Order] = true

		question, err := buildQuestion("", qReq)
		if err != nil {
			return nil, err
		}
		totalPoints += question.Weight()
		questions = append(questions, *question)
	}

	exam := model.Exam{
		Title:       req.Title,
		CourseID:    req.CourseID,
		Duration:    req.Duration,
		TotalPoints: totalPoints,
		Questions:   questions,
	}
	if err := s.examRepo.Create(&exam); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create exam")
		return nil, fmt.Errorf("database error creating exam: %w", err)
	}

	created, err := s.examRepo.FindByIDWithQuestions(exam.ID)
	if err != nil {
		log.Error().Err(err).Str("examID", exam.ID).Msg("Failed to reload created exam for response")
		created = &exam
	}

	var resp dto.ExamResponse
	if err := copier.Copy(&resp, created); err != nil {
		return nil, fmt.Errorf("error preparing exam response: %w", err)
	}
	return &resp, nil
}

func (s *adminService) AddQuestion(examID string, req dto.AddQuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := s.requireRole(req.ActorID, model.Role.CanAuthorExams); err != nil {
		return nil, err
	}
	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, notFoundOr(err, "exam")
	}

	question, err := buildQuestion(examID, req.Question)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return fmt.Errorf("database error creating question: %w", err)
		}
		return tx.Model(&model.Exam{}).
			Where("id = ?", examID).
			UpdateColumn("total_points", gorm.Expr("total_points + ?", question.Weight())).Error
	})
	if err != nil {
		log.Error().Err(err).Str("examID", examID).Msg("Failed to add question to exam")
		return nil, err
	}

	var resp dto.QuestionResponse
	if err := copier.Copy(&resp, question); err != nil {
		return nil, fmt.Errorf("error preparing question response: %w", err)
	}
	return &resp, nil
}

func (s *adminService) PromoteUser(req dto.PromoteUserRequest) (*dto.UserResponse, error) {
	if _, err := s.requireRole(req.ActorID, func(r model.Role) bool { return r == model.RoleAdmin }); err != nil {
		return nil, err
	}

	role := model.Role(req.NewRole)
	if !role.Valid() {
		return nil, fmt.Errorf("role %q: %w", req.NewRole, ErrInvalidRole)
	}
	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		return nil, notFoundOr(err, "user")
	}

	if err := s.userRepo.UpdateRole(req.UserID, role); err != nil {
		log.Error().Err(err).Str("userID", req.UserID).Str("role", req.NewRole).Msg("Failed to update user role")
		return nil, fmt.Errorf("database error updating role: %w", err)
	}

	updated, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, notFoundOr(err, "user")
	}
	var resp dto.UserResponse
	if err := copier.Copy(&resp, updated); err != nil {
		return nil, fmt.Errorf("error preparing user response: %w", err)
	}
	return &resp, nil
}

func (s *adminService) DashboardStats(actorID string) (*dto.DashboardStatsResponse, error) {
	if _, err := s.requireRole(actorID, func(r model.Role) bool { return r == model.RoleAdmin }); err != nil {
		return nil, err
	}

	purchased, err := s.transactionRepo.SumAmountByType(model.TransactionPurchased)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sum purchased points")
		return nil, fmt.Errorf("error computing dashboard stats: %w", err)
	}

	// Pricing: a 1000-point package sells for 99 SDG.
	return &dto.DashboardStatsResponse{
		TotalPointsPurchased: purchased,
		TotalRevenue:         purchased * 99 / 1000,
	}, nil
}
