package service

import (
	"testing"
	"time"

	"github.com/Hazemprogammar/SudanEdu/config"
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAttempt(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)

	attempt, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)

	assert.Equal(t, student.ID, attempt.StudentID)
	assert.Equal(t, exam.ID, attempt.ExamID)
	assert.Empty(t, attempt.Answers)
	assert.Nil(t, attempt.CompletedAt)
	assert.Equal(t, 30*time.Minute, attempt.Deadline.Sub(attempt.StartedAt))
}

func TestStartAttemptUnknownExam(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)

	_, err := s.attempt.StartAttempt(student.ID, "no-such-exam")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStartAttemptSingleOpenAttemptPolicy(t *testing.T) {
	cfg := defaultTestConfig()
	cfg.Exams.AllowConcurrentAttempts = false
	s := newTestServicesWithConfig(t, cfg)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)

	first, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)

	_, err = s.attempt.StartAttempt(student.ID, exam.ID)
	require.ErrorIs(t, err, ErrAttemptInProgress)

	// Another student is unaffected by the open attempt.
	other := createStudent(t, s.db, 0)
	_, err = s.attempt.StartAttempt(other.ID, exam.ID)
	require.NoError(t, err)

	// Once the open attempt is finalized a new one may start.
	_, err = s.attempt.Submit(student.ID, first.ID, nil)
	require.NoError(t, err)
	_, err = s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)
}

func TestStartAttemptConcurrentAttemptsAllowed(t *testing.T) {
	s := newTestServicesWithConfig(t, &config.Config{
		Points: config.Points{ReferralBonus: 50},
		Exams:  config.Exams{AllowConcurrentAttempts: true},
	})
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)

	_, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)
	_, err = s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)
}

func TestSaveAnswersMergesIncrementally(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)
	q1, q2 := exam.Questions[0].ID, exam.Questions[1].ID

	attempt, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)

	updated, err := s.attempt.SaveAnswers(student.ID, attempt.ID, map[string]string{q1: "A"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{q1: "A"}, updated.Answers)

	updated, err = s.attempt.SaveAnswers(student.ID, attempt.ID, map[string]string{q2: "B"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{q1: "A", q2: "B"}, updated.Answers)

	// A later write for the same question overwrites the earlier one.
	updated, err = s.attempt.SaveAnswers(student.ID, attempt.ID, map[string]string{q1: "C"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{q1: "C", q2: "B"}, updated.Answers)
}

func TestSubmitScoresRecordedAnswers(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)
	q1, q2 := exam.Questions[0].ID, exam.Questions[1].ID

	attempt, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)
	_, err = s.attempt.SaveAnswers(student.ID, attempt.ID, map[string]string{q1: "A", q2: "C"})
	require.NoError(t, err)

	result, err := s.attempt.Submit(student.ID, attempt.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, 3, result.TotalPoints)
	assert.False(t, result.CompletedAt.IsZero())

	// The score was credited to the wallet with the exam as reference.
	assert.Equal(t, 1, userBalance(t, s.db, student.ID))
	entries := ledgerEntries(t, s.db, student.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, model.TransactionEarned, entries[0].Type)
	require.NotNil(t, entries[0].ReferenceID)
	assert.Equal(t, exam.ID, *entries[0].ReferenceID)

	notifications := userNotifications(t, s.db, student.ID)
	require.Len(t, notifications, 1)
	assert.Equal(t, model.NotificationGrade, notifications[0].Type)

	stored, err := s.attempt.GetAttempt(student.ID, attempt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CompletedAt)
	assert.Equal(t, 1, stored.Score)
}

func TestSubmitMergesFinalSnapshot(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)
	q1, q2 := exam.Questions[0].ID, exam.Questions[1].ID

	attempt, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)
	_, err = s.attempt.SaveAnswers(student.ID, attempt.ID, map[string]string{q1: "A"})
	require.NoError(t, err)

	result, err := s.attempt.Submit(student.ID, attempt.ID, map[string]string{q2: "B"})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Score)
}

func TestSubmitTwiceRejected(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)
	q1 := exam.Questions[0].ID

	attempt, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)

	_, err = s.attempt.Submit(student.ID, attempt.ID, map[string]string{q1: "A"})
	require.NoError(t, err)

	_, err = s.attempt.Submit(student.ID, attempt.ID, map[string]string{q1: "A"})
	require.ErrorIs(t, err, ErrAlreadyCompleted)

	// The point award fired exactly once.
	assert.EqualValues(t, 1, countLedgerEntries(t, s.db, student.ID, model.TransactionEarned))
	assert.Equal(t, 1, userBalance(t, s.db, student.ID))
}

func TestSaveAnswersAfterCompletionRejected(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)
	q1 := exam.Questions[0].ID

	attempt, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)
	_, err = s.attempt.SaveAnswers(student.ID, attempt.ID, map[string]string{q1: "A"})
	require.NoError(t, err)
	_, err = s.attempt.Submit(student.ID, attempt.ID, nil)
	require.NoError(t, err)

	_, err = s.attempt.SaveAnswers(student.ID, attempt.ID, map[string]string{q1: "C"})
	require.ErrorIs(t, err, ErrAlreadyCompleted)

	stored, err := s.attempt.GetAttempt(student.ID, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{q1: "A"}, stored.Answers)
}

func TestSubmitZeroScoreSkipsAward(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)
	q1 := exam.Questions[0].ID

	attempt, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)

	result, err := s.attempt.Submit(student.ID, attempt.ID, map[string]string{q1: "C"})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 3, result.TotalPoints)

	assert.Equal(t, 0, userBalance(t, s.db, student.ID))
	assert.Empty(t, ledgerEntries(t, s.db, student.ID))

	// The grade notification is still delivered.
	assert.Len(t, userNotifications(t, s.db, student.ID), 1)
}

func TestAttemptOwnership(t *testing.T) {
	s := newTestServices(t)
	owner := createStudent(t, s.db, 0)
	intruder := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)

	attempt, err := s.attempt.StartAttempt(owner.ID, exam.ID)
	require.NoError(t, err)

	_, err = s.attempt.SaveAnswers(intruder.ID, attempt.ID, map[string]string{"q": "A"})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = s.attempt.Submit(intruder.ID, attempt.ID, nil)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = s.attempt.GetAttempt(intruder.ID, attempt.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestGetAttemptUnknown(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)

	_, err := s.attempt.GetAttempt(student.ID, "no-such-attempt")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListAttempts(t *testing.T) {
	s := newTestServices(t)
	student := createStudent(t, s.db, 0)
	exam := createMathExam(t, s.db)

	first, err := s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)
	_, err = s.attempt.Submit(student.ID, first.ID, nil)
	require.NoError(t, err)
	_, err = s.attempt.StartAttempt(student.ID, exam.ID)
	require.NoError(t, err)

	attempts, err := s.attempt.ListAttempts(student.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	for _, a := range attempts {
		assert.Equal(t, exam.ID, a.ExamID)
		assert.Equal(t, 30*time.Minute, a.Deadline.Sub(a.StartedAt))
	}
}

func TestScoreAnswers(t *testing.T) {
	questions := []model.Question{
		{ID: "q1", CorrectAnswer: "A", Points: 1},
		{ID: "q2", CorrectAnswer: "B", Points: 2},
		{ID: "q3", CorrectAnswer: "C"}, // unset weight counts as one point
	}

	score, total := scoreAnswers(questions, model.AnswerMap{"q1": "A", "q2": "x", "q3": "C", "ghost": "A"})
	assert.Equal(t, 2, score)
	assert.Equal(t, 4, total)

	score, total = scoreAnswers(questions, model.AnswerMap{})
	assert.Equal(t, 0, score)
	assert.Equal(t, 4, total)
}
