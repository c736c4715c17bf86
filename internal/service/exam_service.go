package service

import (
	"fmt"

	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

// ExamService is the read side used while taking an exam.
type ExamService interface {
	GetExam(examID string) (*dto.ExamResponse, error)
	ListByCourse(courseID string) ([]dto.ExamResponse, error)
	ListQuestions(examID string) ([]dto.StudentQuestionResponse, error)
}

type examService struct {
	examRepo     repository.ExamRepository
	questionRepo repository.QuestionRepository
}

func NewExamService(examRepo repository.ExamRepository, questionRepo repository.QuestionRepository) ExamService {
	return &examService{examRepo: examRepo, questionRepo: questionRepo}
}

func (s *examService) GetExam(examID string) (*dto.ExamResponse, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return nil, notFoundOr(err, "exam")
	}

	var resp dto.ExamResponse
	if err := copier.Copy(&resp, exam); err != nil {
		log.Error().Err(err).Str("examID", examID).Msg("Failed to copy exam to DTO")
		return nil, fmt.Errorf("error preparing exam response: %w", err)
	}
	return &resp, nil
}

func (s *examService) ListByCourse(courseID string) ([]dto.ExamResponse, error) {
	exams, err := s.examRepo.FindByCourseID(courseID)
	if err != nil {
		log.Error().Err(err).Str("courseID", courseID).Msg("Failed to list exams for course")
		return nil, fmt.Errorf("error fetching exams: %w", err)
	}

	dtos := make([]dto.ExamResponse, 0, len(exams))
	for _, exam := range exams {
		var resp dto.ExamResponse
		if err := copier.Copy(&resp, &exam); err != nil {
			return nil, fmt.Errorf("error preparing exam response: %w", err)
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}

// ListQuestions returns the exam's questions in presentation order without the
// designated correct answers.
func (s *examService) ListQuestions(examID string) ([]dto.StudentQuestionResponse, error) {
	if _, err := s.examRepo.FindByID(examID); err != nil {
		return nil, notFoundOr(err, "exam")
	}

	questions, err := s.questionRepo.FindByExamID(examID)
	if err != nil {
		log.Error().Err(err).Str("examID", examID).Msg("Failed to list exam questions")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	dtos := make([]dto.StudentQuestionResponse, 0, len(questions))
	for _, q := range questions {
		var resp dto.StudentQuestionResponse
		if err := copier.Copy(&resp, &q); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		resp.Points = q.Weight()
		dtos = append(dtos, resp)
	}
	return dtos, nil
}
