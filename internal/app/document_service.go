package app

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"docuchat/internal/model"
	"docuchat/internal/pkg/extract"
)

var (
	ErrFolderNotFound     = errors.New("folder not found")
	ErrFolderReserved     = errors.New("folder is reserved and cannot be deleted")
	ErrMalformedWorkspace = errors.New("malformed workspace payload")
)

type DocumentStore interface {
	List() ([]model.Document, error)
	Get(id string) (*model.Document, error)
	Save(doc *model.Document) error
	Delete(id string) error
	UnfileByFolderID(folderID string) error
	Clear() error
}

type FolderStore interface {
	List() ([]model.Folder, error)
	Get(id string) (*model.Folder, error)
	Save(folder *model.Folder) error
	Delete(id string) error
	ClearCustom() error
}

// DocumentService owns the document registry: ingestion, classification
// moves, folders, and workspace export/import. It never talks to the engine.
type DocumentService struct {
	docs    DocumentStore
	folders FolderStore
}

func NewDocumentService(docs DocumentStore, folders FolderStore) *DocumentService {
	return &DocumentService{docs: docs, folders: folders}
}

type UploadFile struct {
	Name     string
	Data     []byte
	FolderID string
}

type UploadFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

type UploadResult struct {
	Documents []model.Document `json:"documents"`
	Failures  []UploadFailure  `json:"failures,omitempty"`
}

// Upload ingests a batch of files. Extraction failures are per file: the
// file is reported and skipped, the rest of the batch proceeds.
func (s *DocumentService) Upload(files []UploadFile) (*UploadResult, error) {
	if len(files) == 0 {
		return nil, ErrInvalidInput
	}

	result := &UploadResult{}
	for _, file := range files {
		name := strings.TrimSpace(file.Name)
		if name == "" {
			name = "Untitled"
		}

		text, mediaType, err := extract.Text(file.Data, name)
		if err != nil {
			logrus.WithError(err).WithField("file", name).Warn("text extraction failed, skipping file")
			result.Failures = append(result.Failures, UploadFailure{Name: name, Error: err.Error()})
			continue
		}

		if file.FolderID != "" {
			folder, err := s.folders.Get(file.FolderID)
			if err != nil {
				return nil, err
			}
			if folder == nil {
				result.Failures = append(result.Failures, UploadFailure{Name: name, Error: ErrFolderNotFound.Error()})
				continue
			}
		}

		doc := model.Document{
			ID:         uuid.NewString(),
			Name:       name,
			Content:    text,
			MediaType:  mediaType,
			SizeBytes:  int64(len(file.Data)),
			FolderID:   file.FolderID,
			UploadedAt: time.Now(),
		}
		if err := s.docs.Save(&doc); err != nil {
			return nil, err
		}
		result.Documents = append(result.Documents, doc)
	}
	return result, nil
}

func (s *DocumentService) List() ([]model.Document, error) {
	return s.docs.List()
}

func (s *DocumentService) Delete(id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	doc, err := s.docs.Get(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}
	return s.docs.Delete(id)
}

// Move reassigns a document's folder. An empty folder id unfiles it. This is
// the only mutation a document accepts after ingestion.
func (s *DocumentService) Move(documentID, folderID string) (*model.Document, error) {
	if documentID == "" {
		return nil, ErrInvalidInput
	}
	doc, err := s.docs.Get(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	if folderID != "" {
		folder, err := s.folders.Get(folderID)
		if err != nil {
			return nil, err
		}
		if folder == nil {
			return nil, ErrFolderNotFound
		}
	}

	doc.FolderID = folderID
	if err := s.docs.Save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) CreateFolder(name string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}
	folder := model.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}
	if err := s.folders.Save(&folder); err != nil {
		return nil, err
	}
	return &folder, nil
}

func (s *DocumentService) ListFolders() ([]model.Folder, error) {
	return s.folders.List()
}

// DeleteFolder removes a folder and unfiles its documents; content is never
// deleted by a folder deletion. The seeded folders cannot be removed.
func (s *DocumentService) DeleteFolder(id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	folder, err := s.folders.Get(id)
	if err != nil {
		return err
	}
	if folder == nil {
		return ErrFolderNotFound
	}
	if folder.Reserved() {
		return ErrFolderReserved
	}
	if err := s.docs.UnfileByFolderID(id); err != nil {
		return err
	}
	return s.folders.Delete(id)
}

// ExportWorkspace snapshots the full document and folder set. Empty sets are
// exported as empty arrays, never null, so an export of an empty registry
// imports back cleanly.
func (s *DocumentService) ExportWorkspace() (*model.Workspace, error) {
	docs, err := s.docs.List()
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []model.Document{}
	}
	folders, err := s.folders.List()
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []model.Folder{}
	}
	return &model.Workspace{
		Documents:  docs,
		Folders:    folders,
		ExportedAt: time.Now(),
	}, nil
}

// ImportWorkspace replaces the registry with the imported set. The payload is
// validated before anything is cleared, so a malformed import leaves state
// untouched. A nil document list is an empty set, not a malformed payload:
// an export of an empty registry must round-trip.
func (s *DocumentService) ImportWorkspace(ws *model.Workspace) error {
	if ws == nil {
		return ErrMalformedWorkspace
	}
	seen := make(map[string]struct{}, len(ws.Documents))
	for _, doc := range ws.Documents {
		if doc.ID == "" || doc.Name == "" {
			return ErrMalformedWorkspace
		}
		if _, dup := seen[doc.ID]; dup {
			return ErrMalformedWorkspace
		}
		seen[doc.ID] = struct{}{}
	}
	for _, folder := range ws.Folders {
		if folder.ID == "" || folder.Name == "" {
			return ErrMalformedWorkspace
		}
	}

	if err := s.docs.Clear(); err != nil {
		return err
	}
	if err := s.folders.ClearCustom(); err != nil {
		return err
	}
	for i := range ws.Folders {
		folder := ws.Folders[i]
		if err := s.folders.Save(&folder); err != nil {
			return err
		}
	}
	for i := range ws.Documents {
		doc := ws.Documents[i]
		if err := s.docs.Save(&doc); err != nil {
			return err
		}
	}
	return nil
}
