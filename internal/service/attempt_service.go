package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Hazemprogammar/SudanEdu/config"
	"github.com/Hazemprogammar/SudanEdu/internal/dto"
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/Hazemprogammar/SudanEdu/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// AttemptService owns the lifecycle of an exam attempt: start, incremental
// answer capture, and one-time scored submission.
type AttemptService interface {
	StartAttempt(studentID, examID string) (*dto.ExamAttemptResponse, error)
	SaveAnswers(studentID, attemptID string, answers map[string]string) (*dto.ExamAttemptResponse, error)
	Submit(studentID, attemptID string, finalAnswers map[string]string) (*dto.SubmitResultResponse, error)
	GetAttempt(studentID, attemptID string) (*dto.ExamAttemptResponse, error)
	ListAttempts(studentID string) ([]dto.ExamAttemptResponse, error)
}

type attemptService struct {
	examRepo        repository.ExamRepository
	attemptRepo     repository.ExamAttemptRepository
	walletSvc       WalletService
	notificationSvc NotificationService
	cfg             *config.Config
	db              *gorm.DB
}

func NewAttemptService(
	examRepo repository.ExamRepository,
	attemptRepo repository.ExamAttemptRepository,
	walletSvc WalletService,
	notificationSvc NotificationService,
	cfg *config.Config,
	db *gorm.DB,
) AttemptService {
	return &attemptService{
		examRepo:        examRepo,
		attemptRepo:     attemptRepo,
		walletSvc:       walletSvc,
		notificationSvc: notificationSvc,
		cfg:             cfg,
		db:              db,
	}
}

func (s *attemptService) StartAttempt(studentID, examID string) (*dto.ExamAttemptResponse, error) {
	exam, err := s.examRepo.FindByID(examID)
	if err != nil {
		return nil, notFoundOr(err, "exam")
	}

	if !s.cfg.Exams.AllowConcurrentAttempts {
		_, err := s.attemptRepo.FindOpenByStudentAndExam(studentID, examID)
		if err == nil {
			return nil, fmt.Errorf("exam %s: %w", examID, ErrAttemptInProgress)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check for open attempts: %w", err)
		}
	}

	attempt := model.ExamAttempt{
		StudentID: studentID,
		ExamID:    examID,
		Answers:   model.AnswerMap{},
	}
	if err := s.attemptRepo.Create(&attempt); err != nil {
		log.Error().Err(err).Str("examID", examID).Str("studentID", studentID).Msg("Failed to create exam attempt")
		return nil, fmt.Errorf("failed to start exam attempt: %w", err)
	}

	log.Info().Str("attemptID", attempt.ID).Str("examID", examID).Str("studentID", studentID).Msg("Exam attempt started")
	return toAttemptResponse(&attempt, exam)
}

func (s *attemptService) SaveAnswers(studentID, attemptID string, answers map[string]string) (*dto.ExamAttemptResponse, error) {
	attempt, err := s.loadOwnedAttempt(studentID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed() {
		return nil, fmt.Errorf("attempt %s: %w", attemptID, ErrAlreadyCompleted)
	}

	merged := mergeAnswers(attempt.Answers, answers)

	// Guarded against a concurrent submission: the update only lands while the
	// attempt is still open.
	res := s.db.Model(&model.ExamAttempt{}).
		Where("id = ? AND completed_at IS NULL", attemptID).
		UpdateColumn("answers", merged)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to save answers: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("attempt %s: %w", attemptID, ErrAlreadyCompleted)
	}

	attempt.Answers = merged
	return s.toAttemptResponseWithExam(attempt)
}

// Submit finalizes the attempt exactly once, scoring whatever answers are
// recorded at that moment. A second call is rejected, never a no-op, because
// the point award must fire only on the call that wins the finalization.
func (s *attemptService) Submit(studentID, attemptID string, finalAnswers map[string]string) (*dto.SubmitResultResponse, error) {
	attempt, err := s.loadOwnedAttempt(studentID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed() {
		return nil, fmt.Errorf("attempt %s: %w", attemptID, ErrAlreadyCompleted)
	}

	exam, err := s.examRepo.FindByIDWithQuestions(attempt.ExamID)
	if err != nil {
		return nil, notFoundOr(err, "exam")
	}

	answers := mergeAnswers(attempt.Answers, finalAnswers)
	score, totalPoints := scoreAnswers(exam.Questions, answers)
	now := time.Now()

	res := s.db.Model(&model.ExamAttempt{}).
		Where("id = ? AND completed_at IS NULL", attemptID).
		Updates(map[string]interface{}{
			"answers":      answers,
			"score":        score,
			"total_points": totalPoints,
			"completed_at": now,
		})
	if res.Error != nil {
		log.Error().Err(res.Error).Str("attemptID", attemptID).Msg("Failed to finalize exam attempt")
		return nil, fmt.Errorf("failed to finalize exam attempt: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// A concurrent submission finalized the attempt first.
		return nil, fmt.Errorf("attempt %s: %w", attemptID, ErrAlreadyCompleted)
	}

	deadline := attempt.StartedAt.Add(time.Duration(exam.Duration) * time.Minute)
	if now.After(deadline) {
		log.Info().Str("attemptID", attemptID).Time("deadline", deadline).Msg("Attempt submitted past its deadline; recorded answers scored as-is")
	}

	// The attempt record is durable at this point; the point award and the
	// notification are best-effort and must not fail the submission.
	if score > 0 {
		examID := attempt.ExamID
		if _, err := s.walletSvc.Earn(studentID, score, "Exam completion bonus", &examID); err != nil {
			log.Error().Err(err).Str("attemptID", attemptID).Int("score", score).Msg("Failed to credit exam score to wallet")
		}
	}
	s.notificationSvc.Notify(studentID, "Exam completed",
		fmt.Sprintf("You scored %d of %d points on %s", score, totalPoints, exam.Title),
		model.NotificationGrade)

	log.Info().Str("attemptID", attemptID).Int("score", score).Int("totalPoints", totalPoints).Msg("Exam attempt submitted")
	return &dto.SubmitResultResponse{
		AttemptID:   attemptID,
		Score:       score,
		TotalPoints: totalPoints,
		CompletedAt: now,
	}, nil
}

func (s *attemptService) GetAttempt(studentID, attemptID string) (*dto.ExamAttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByIDWithExam(attemptID)
	if err != nil {
		return nil, notFoundOr(err, "exam attempt")
	}
	if attempt.StudentID != studentID {
		return nil, fmt.Errorf("attempt %s: %w", attemptID, ErrForbidden)
	}
	return toAttemptResponse(attempt, &attempt.Exam)
}

func (s *attemptService) ListAttempts(studentID string) ([]dto.ExamAttemptResponse, error) {
	attempts, err := s.attemptRepo.FindAllByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve attempts: %w", err)
	}

	responses := make([]dto.ExamAttemptResponse, 0, len(attempts))
	for i := range attempts {
		resp, err := toAttemptResponse(&attempts[i], &attempts[i].Exam)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

func (s *attemptService) loadOwnedAttempt(studentID, attemptID string) (*model.ExamAttempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		return nil, notFoundOr(err, "exam attempt")
	}
	if attempt.StudentID != studentID {
		return nil, fmt.Errorf("attempt %s: %w", attemptID, ErrForbidden)
	}
	return attempt, nil
}

func (s *attemptService) toAttemptResponseWithExam(attempt *model.ExamAttempt) (*dto.ExamAttemptResponse, error) {
	exam, err := s.examRepo.FindByID(attempt.ExamID)
	if err != nil {
		return nil, notFoundOr(err, "exam")
	}
	return toAttemptResponse(attempt, exam)
}

func toAttemptResponse(attempt *model.ExamAttempt, exam *model.Exam) (*dto.ExamAttemptResponse, error) {
	var resp dto.ExamAttemptResponse
	if err := copier.Copy(&resp, attempt); err != nil {
		log.Error().Err(err).Str("attemptID", attempt.ID).Msg("Failed to copy attempt to DTO")
		return nil, fmt.Errorf("error preparing attempt response: %w", err)
	}
	resp.Deadline = attempt.StartedAt.Add(time.Duration(exam.Duration) * time.Minute)
	return &resp, nil
}

func mergeAnswers(stored model.AnswerMap, updates map[string]string) model.AnswerMap {
	merged := model.AnswerMap{}
	for questionID, answer := range stored {
		merged[questionID] = answer
	}
	// Later writes overwrite earlier ones per question.
	for questionID, answer := range updates {
		merged[questionID] = answer
	}
	return merged
}

// scoreAnswers computes the weighted score in one pass at submission time.
// Answers for unknown questions contribute nothing; missing answers count as
// incorrect.
func scoreAnswers(questions []model.Question, answers model.AnswerMap) (score, totalPoints int) {
	for _, q := range questions {
		weight := q.Weight()
		totalPoints += weight
		if answer, ok := answers[q.ID]; ok && answer == q.CorrectAnswer {
			score += weight
		}
	}
	return score, totalPoints
}
