package repository

import (
	"errors"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/util"

	"gorm.io/gorm"
)

type UnitRepository struct {
	DB *gorm.DB
}

func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{DB: db}
}

func (r *UnitRepository) ListOrdered() ([]model.Unit, error) {
	var units []model.Unit
	err := r.DB.Order("`order` ASC").Find(&units).Error
	return units, err
}

func (r *UnitRepository) FindByKey(key string) (*model.Unit, error) {
	var unit model.Unit
	err := r.DB.Preload("Assignments", func(db *gorm.DB) *gorm.DB {
		return db.Order("week_number ASC")
	}).First(&unit, "`key` = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUnitNotFound
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}
