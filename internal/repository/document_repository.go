package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"docuchat/internal/model"
)

// DocumentRepository is the persistent backing of the document registry.
// List preserves upload order; the assembler depends on that for stable,
// reproducible prompt contexts.
type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

func (r *DocumentRepository) Save(doc *model.Document) error {
	if err := r.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(doc).Error; err != nil {
		return fmt.Errorf("save document failed: %w", err)
	}
	return nil
}

func (r *DocumentRepository) List() ([]model.Document, error) {
	var docs []model.Document
	if err := r.db.Order("uploaded_at ASC, id ASC").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documents failed: %w", err)
	}
	return docs, nil
}

func (r *DocumentRepository) Get(id string) (*model.Document, error) {
	var doc model.Document
	if err := r.db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document failed: %w", err)
	}
	return &doc, nil
}

func (r *DocumentRepository) Delete(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&model.Document{}).Error; err != nil {
		return fmt.Errorf("delete document failed: %w", err)
	}
	return nil
}

// UnfileByFolderID clears the folder assignment of every document in the
// folder. Folder deletion never deletes content.
func (r *DocumentRepository) UnfileByFolderID(folderID string) error {
	if err := r.db.Model(&model.Document{}).Where("folder_id = ?", folderID).Update("folder_id", "").Error; err != nil {
		return fmt.Errorf("unfile documents failed: %w", err)
	}
	return nil
}

// Clear removes every document; used by workspace import.
func (r *DocumentRepository) Clear() error {
	if err := r.db.Where("1 = 1").Delete(&model.Document{}).Error; err != nil {
		return fmt.Errorf("clear documents failed: %w", err)
	}
	return nil
}
