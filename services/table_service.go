package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tablebook/reservation-app/models"
	"github.com/tablebook/reservation-app/utils"
)

type TableInput struct {
	TableName string `json:"table_name"`
	Capacity  int    `json:"capacity"`
}

type TableService struct {
	DB *gorm.DB
}

func NewTableService(db *gorm.DB) *TableService {
	return &TableService{DB: db}
}

func (s *TableService) Create(input TableInput) (*models.Table, error) {
	if input.TableName == "" || input.Capacity == 0 {
		return nil, utils.Validationf("table_name or capacity is missing.")
	}
	if len(input.TableName) < 2 {
		return nil, utils.Validationf("table_name must be 2 or more characters long.")
	}
	if input.Capacity < 0 {
		return nil, utils.Validationf("capacity must be a number greater than zero.")
	}

	table := models.Table{
		TableName: input.TableName,
		Capacity:  input.Capacity,
	}
	if err := s.DB.Create(&table).Error; err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *TableService) Get(id uint) (*models.Table, error) {
	var table models.Table
	if err := s.DB.First(&table, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("table_id %d does not exist.", id)
		}
		return nil, err
	}
	return &table, nil
}

func (s *TableService) List() ([]models.Table, error) {
	var tables []models.Table
	if err := s.DB.Order("table_name").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}
