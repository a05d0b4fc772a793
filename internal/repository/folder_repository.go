package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"docuchat/internal/model"
)

type FolderRepository struct {
	db *gorm.DB
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) Save(folder *model.Folder) error {
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(folder).Error; err != nil {
		return fmt.Errorf("save folder failed: %w", err)
	}
	return nil
}

func (r *FolderRepository) List() ([]model.Folder, error) {
	var folders []model.Folder
	if err := r.db.Order("created_at ASC, id ASC").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("list folders failed: %w", err)
	}
	return folders, nil
}

func (r *FolderRepository) Get(id string) (*model.Folder, error) {
	var folder model.Folder
	if err := r.db.Where("id = ?", id).First(&folder).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get folder failed: %w", err)
	}
	return &folder, nil
}

func (r *FolderRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Folder{}).Error; err != nil {
		return fmt.Errorf("delete folder failed: %w", err)
	}
	return nil
}

// ClearCustom removes every folder except the seeded well-known ones.
func (r *FolderRepository) ClearCustom() error {
	if err := r.db.Where("id NOT IN ?", []string{model.FolderGeneral, model.FolderConfidential}).Delete(&model.Folder{}).Error; err != nil {
		return fmt.Errorf("clear folders failed: %w", err)
	}
	return nil
}
