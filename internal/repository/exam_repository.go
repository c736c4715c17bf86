package repository

import (
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"gorm.io/gorm"
)

type ExamRepository interface {
	Create(exam *model.Exam) error
	FindByID(id string) (*model.Exam, error)
	FindByIDWithQuestions(id string) (*model.Exam, error)
	FindByCourseID(courseID string) ([]model.Exam, error)
}

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(exam *model.Exam) error {
	// GORM creates associated questions when exam.Questions is populated.
	return r.db.Create(exam).Error
}

func (r *examRepository) FindByID(id string) (*model.Exam, error) {
	var exam model.Exam
	if err := r.db.First(&exam, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByIDWithQuestions(id string) (*model.Exam, error) {
	var exam model.Exam
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.question_order ASC")
	}).First(&exam, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindByCourseID(courseID string) ([]model.Exam, error) {
	var exams []model.Exam
	if err := r.db.Where("course_id = ?", courseID).Order("created_at DESC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}
