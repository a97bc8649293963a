package services

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/gmbdash/gmb-backend/internal/models"
)

// MaxFilePosts caps the flat-file collection; inserting past the cap evicts
// the oldest entry.
const MaxFilePosts = 100

type fileDocument struct {
	Posts []models.FilePost `json:"posts"`
}

// FileStore is the flat-file post collection: a single JSON document
// {"posts": [...]} holding at most MaxFilePosts entries, most-recent first.
// The mutex is held across the whole read-modify-write cycle so concurrent
// saves cannot lose updates.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore opens the store at path. A missing or malformed file is an
// initialization case here, at startup, and is reset to an empty document;
// later reads report corruption as an error instead.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{path: path}
	if _, err := store.readDocument(); err != nil {
		if writeErr := writeDocument(path, fileDocument{Posts: []models.FilePost{}}); writeErr != nil {
			return nil, fmt.Errorf("initialize posts file: %w", writeErr)
		}
	}
	return store, nil
}

// Save prepends post and rewrites the file, evicting entries past the cap.
func (s *FileStore) Save(post models.FilePost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return err
	}

	doc.Posts = append([]models.FilePost{post}, doc.Posts...)
	if len(doc.Posts) > MaxFilePosts {
		doc.Posts = doc.Posts[:MaxFilePosts]
	}

	if err := writeDocument(s.path, doc); err != nil {
		return fmt.Errorf("write posts file: %w", err)
	}
	return nil
}

// List returns every stored post, most-recent first.
func (s *FileStore) List() ([]models.FilePost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument()
	if err != nil {
		return nil, err
	}
	return doc.Posts, nil
}

func (s *FileStore) readDocument() (fileDocument, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fileDocument{}, fmt.Errorf("read posts file: %w", err)
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fileDocument{}, fmt.Errorf("parse posts file: %w", err)
	}
	if doc.Posts == nil {
		doc.Posts = []models.FilePost{}
	}
	return doc, nil
}

func writeDocument(path string, doc fileDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0644)
}
