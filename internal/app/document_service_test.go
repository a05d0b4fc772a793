package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docuchat/internal/model"
)

type fakeDocStore struct {
	docs []model.Document
}

func (f *fakeDocStore) List() ([]model.Document, error) { return f.docs, nil }

func (f *fakeDocStore) Get(id string) (*model.Document, error) {
	for i := range f.docs {
		if f.docs[i].ID == id {
			doc := f.docs[i]
			return &doc, nil
		}
	}
	return nil, nil
}

func (f *fakeDocStore) Save(doc *model.Document) error {
	for i := range f.docs {
		if f.docs[i].ID == doc.ID {
			f.docs[i] = *doc
			return nil
		}
	}
	f.docs = append(f.docs, *doc)
	return nil
}

func (f *fakeDocStore) Delete(id string) error {
	for i := range f.docs {
		if f.docs[i].ID == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeDocStore) UnfileByFolderID(folderID string) error {
	for i := range f.docs {
		if f.docs[i].FolderID == folderID {
			f.docs[i].FolderID = ""
		}
	}
	return nil
}

func (f *fakeDocStore) Clear() error {
	f.docs = nil
	return nil
}

type fakeFolderStore struct {
	folders []model.Folder
}

func (f *fakeFolderStore) List() ([]model.Folder, error) { return f.folders, nil }

func (f *fakeFolderStore) Get(id string) (*model.Folder, error) {
	for i := range f.folders {
		if f.folders[i].ID == id {
			folder := f.folders[i]
			return &folder, nil
		}
	}
	return nil, nil
}

func (f *fakeFolderStore) Save(folder *model.Folder) error {
	for i := range f.folders {
		if f.folders[i].ID == folder.ID {
			f.folders[i] = *folder
			return nil
		}
	}
	f.folders = append(f.folders, *folder)
	return nil
}

func (f *fakeFolderStore) Delete(id string) error {
	for i := range f.folders {
		if f.folders[i].ID == id {
			f.folders = append(f.folders[:i], f.folders[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeFolderStore) ClearCustom() error {
	kept := f.folders[:0]
	for _, folder := range f.folders {
		if folder.Reserved() {
			kept = append(kept, folder)
		}
	}
	f.folders = kept
	return nil
}

func newDocumentFixture() (*DocumentService, *fakeDocStore, *fakeFolderStore) {
	docs := &fakeDocStore{}
	folders := &fakeFolderStore{folders: []model.Folder{
		{ID: model.FolderGeneral, Name: "General"},
		{ID: model.FolderConfidential, Name: "Confidential"},
	}}
	return NewDocumentService(docs, folders), docs, folders
}

func TestUploadBatch(t *testing.T) {
	service, docs, _ := newDocumentFixture()

	result, err := service.Upload([]UploadFile{
		{Name: "Notes.txt", Data: []byte("Meeting at 3pm."), FolderID: model.FolderGeneral},
		{Name: "Todo.txt", Data: []byte("Buy milk.")},
	})
	require.NoError(t, err)

	require.Len(t, result.Documents, 2)
	assert.Empty(t, result.Failures)
	assert.Equal(t, "Notes.txt", result.Documents[0].Name)
	assert.Equal(t, "Meeting at 3pm.", result.Documents[0].Content)
	assert.Equal(t, model.FolderGeneral, result.Documents[0].FolderID)
	assert.Empty(t, result.Documents[1].FolderID)
	assert.Len(t, docs.docs, 2)
}

func TestUploadSkipsUnextractableFiles(t *testing.T) {
	service, docs, _ := newDocumentFixture()

	result, err := service.Upload([]UploadFile{
		{Name: "photo.bin", Data: []byte{0x00, 0xff, 0x00, 0xfe}},
		{Name: "Notes.txt", Data: []byte("Meeting at 3pm.")},
	})
	require.NoError(t, err, "a bad file must not fail the batch")

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "Notes.txt", result.Documents[0].Name)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "photo.bin", result.Failures[0].Name)
	assert.Len(t, docs.docs, 1)
}

func TestUploadUnknownFolder(t *testing.T) {
	service, _, _ := newDocumentFixture()

	result, err := service.Upload([]UploadFile{
		{Name: "Notes.txt", Data: []byte("hello"), FolderID: "missing"},
	})
	require.NoError(t, err)

	assert.Empty(t, result.Documents)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, ErrFolderNotFound.Error(), result.Failures[0].Error)
}

func TestUploadEmptyBatch(t *testing.T) {
	service, _, _ := newDocumentFixture()

	_, err := service.Upload(nil)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteDocument(t *testing.T) {
	service, docs, _ := newDocumentFixture()
	docs.docs = []model.Document{{ID: "d1", Name: "Notes.txt"}}

	require.NoError(t, service.Delete("d1"))
	assert.Empty(t, docs.docs)

	assert.ErrorIs(t, service.Delete("d1"), ErrDocumentNotFound)
}

func TestMoveDocument(t *testing.T) {
	service, docs, _ := newDocumentFixture()
	docs.docs = []model.Document{{ID: "d1", Name: "Salary.txt", FolderID: model.FolderGeneral}}

	moved, err := service.Move("d1", model.FolderConfidential)
	require.NoError(t, err)
	assert.Equal(t, model.FolderConfidential, moved.FolderID)
	assert.Equal(t, model.FolderConfidential, docs.docs[0].FolderID)

	unfiled, err := service.Move("d1", "")
	require.NoError(t, err)
	assert.Empty(t, unfiled.FolderID)

	_, err = service.Move("d1", "missing")
	assert.ErrorIs(t, err, ErrFolderNotFound)

	_, err = service.Move("missing", model.FolderGeneral)
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestCreateFolder(t *testing.T) {
	service, _, folders := newDocumentFixture()

	folder, err := service.CreateFolder("  Projects ")
	require.NoError(t, err)
	assert.Equal(t, "Projects", folder.Name)
	assert.NotEmpty(t, folder.ID)
	assert.Len(t, folders.folders, 3)

	_, err = service.CreateFolder("   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteFolderUnfilesDocuments(t *testing.T) {
	service, docs, folders := newDocumentFixture()
	folders.folders = append(folders.folders, model.Folder{ID: "f1", Name: "Projects"})
	docs.docs = []model.Document{
		{ID: "d1", Name: "Plan.txt", FolderID: "f1"},
		{ID: "d2", Name: "Notes.txt", FolderID: model.FolderGeneral},
	}

	require.NoError(t, service.DeleteFolder("f1"))

	assert.Len(t, folders.folders, 2)
	assert.Empty(t, docs.docs[0].FolderID, "documents survive folder deletion, unfiled")
	assert.Equal(t, model.FolderGeneral, docs.docs[1].FolderID)
}

func TestDeleteReservedFolder(t *testing.T) {
	service, _, folders := newDocumentFixture()

	assert.ErrorIs(t, service.DeleteFolder(model.FolderGeneral), ErrFolderReserved)
	assert.ErrorIs(t, service.DeleteFolder(model.FolderConfidential), ErrFolderReserved)
	assert.ErrorIs(t, service.DeleteFolder("missing"), ErrFolderNotFound)
	assert.Len(t, folders.folders, 2)
}

func TestWorkspaceExportImportRoundTrip(t *testing.T) {
	service, docs, folders := newDocumentFixture()
	folders.folders = append(folders.folders, model.Folder{ID: "f1", Name: "Projects"})
	docs.docs = []model.Document{
		{ID: "d1", Name: "Plan.txt", Content: "the plan", FolderID: "f1", UploadedAt: time.Now()},
		{ID: "d2", Name: "Salary.txt", Content: "secret", FolderID: model.FolderConfidential, UploadedAt: time.Now()},
	}

	ws, err := service.ExportWorkspace()
	require.NoError(t, err)
	require.Len(t, ws.Documents, 2)
	require.Len(t, ws.Folders, 3)

	other, otherDocs, otherFolders := newDocumentFixture()
	require.NoError(t, other.ImportWorkspace(ws))

	assert.ElementsMatch(t, docs.docs, otherDocs.docs)
	assert.ElementsMatch(t, folders.folders, otherFolders.folders)
}

func TestWorkspaceRoundTripEmptyRegistry(t *testing.T) {
	service, _, _ := newDocumentFixture()

	ws, err := service.ExportWorkspace()
	require.NoError(t, err)

	payload, err := json.Marshal(ws)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"documents":[]`)

	var decoded model.Workspace
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.NoError(t, service.ImportWorkspace(&decoded))
}

func TestImportWorkspaceNilDocumentsIsEmptySet(t *testing.T) {
	service, docs, folders := newDocumentFixture()
	docs.docs = []model.Document{{ID: "d1", Name: "Old.txt"}}

	var decoded model.Workspace
	require.NoError(t, json.Unmarshal([]byte(`{"documents":null,"folders":null}`), &decoded))
	require.NoError(t, service.ImportWorkspace(&decoded))

	assert.Empty(t, docs.docs)
	assert.Len(t, folders.folders, 2, "reserved folders survive an empty import")
}

func TestImportWorkspaceValidatesBeforeClearing(t *testing.T) {
	service, docs, folders := newDocumentFixture()
	docs.docs = []model.Document{{ID: "d1", Name: "Keep.txt"}}

	bad := &model.Workspace{
		Documents: []model.Document{
			{ID: "x1", Name: "A.txt"},
			{ID: "x1", Name: "B.txt"}, // duplicate id
		},
	}
	assert.ErrorIs(t, service.ImportWorkspace(bad), ErrMalformedWorkspace)

	assert.ErrorIs(t, service.ImportWorkspace(nil), ErrMalformedWorkspace)
	assert.ErrorIs(t, service.ImportWorkspace(&model.Workspace{
		Documents: []model.Document{{ID: "", Name: "A.txt"}},
	}), ErrMalformedWorkspace)
	assert.ErrorIs(t, service.ImportWorkspace(&model.Workspace{
		Documents: []model.Document{{ID: "x1", Name: "A.txt"}},
		Folders:   []model.Folder{{ID: "f1", Name: ""}},
	}), ErrMalformedWorkspace)

	assert.Len(t, docs.docs, 1, "a rejected import must leave the registry untouched")
	assert.Len(t, folders.folders, 2)
}

func TestImportWorkspaceReplacesRegistry(t *testing.T) {
	service, docs, folders := newDocumentFixture()
	folders.folders = append(folders.folders, model.Folder{ID: "old", Name: "Old"})
	docs.docs = []model.Document{{ID: "old-doc", Name: "Old.txt"}}

	require.NoError(t, service.ImportWorkspace(&model.Workspace{
		Documents: []model.Document{{ID: "d1", Name: "New.txt", Content: "new"}},
		Folders:   []model.Folder{{ID: "f1", Name: "Projects"}},
	}))

	require.Len(t, docs.docs, 1)
	assert.Equal(t, "New.txt", docs.docs[0].Name)

	ids := make([]string, 0, len(folders.folders))
	for _, folder := range folders.folders {
		ids = append(ids, folder.ID)
	}
	assert.ElementsMatch(t, []string{model.FolderGeneral, model.FolderConfidential, "f1"}, ids)
}
