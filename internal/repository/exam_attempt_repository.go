package repository

import (
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"gorm.io/gorm"
)

type ExamAttemptRepository interface {
	Create(attempt *model.ExamAttempt) error
	FindByID(id string) (*model.ExamAttempt, error)
	FindByIDWithExam(id string) (*model.ExamAttempt, error)
	FindOpenByStudentAndExam(studentID, examID string) (*model.ExamAttempt, error)
	FindAllByStudent(studentID string) ([]model.ExamAttempt, error)
}

type examAttemptRepository struct {
	db *gorm.DB
}

func NewExamAttemptRepository(db *gorm.DB) ExamAttemptRepository {
	return &examAttemptRepository{db: db}
}

func (r *examAttemptRepository) Create(attempt *model.ExamAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *examAttemptRepository) FindByID(id string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	if err := r.db.First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *examAttemptRepository) FindByIDWithExam(id string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	if err := r.db.Preload("Exam").First(&attempt, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *examAttemptRepository) FindOpenByStudentAndExam(studentID, examID string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.db.
		Where("student_id = ? AND exam_id = ? AND completed_at IS NULL", studentID, examID).
		Order("started_at DESC").
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *examAttemptRepository) FindAllByStudent(studentID string) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.db.Preload("Exam").
		Where("student_id = ?", studentID).
		Order("started_at DESC").
		Find(&attempts).Error
	return attempts, err
}
