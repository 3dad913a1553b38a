package api

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samcharles93/cdfkit/pkg/cdf"
)

// DefaultMaxFiles bounds a FileStore created with a non-positive limit.
const DefaultMaxFiles = 64

type fileRecord struct {
	ID        string
	Name      string
	Size      int
	CreatedAt time.Time
	File      *cdf.File
}

// FileStore keeps decoded uploads in memory. When full, the oldest upload is
// evicted to make room. Records are immutable once saved and uploads are heap
// buffers, so handlers may keep using a record after it is evicted.
type FileStore struct {
	mu    sync.Mutex
	max   int
	files map[string]*fileRecord
	order []string
}

func NewFileStore(maxFiles int) *FileStore {
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	return &FileStore{
		max:   maxFiles,
		files: make(map[string]*fileRecord),
	}
}

func (s *FileStore) Save(name string, f *cdf.File, now time.Time) *fileRecord {
	rec := &fileRecord{
		ID:        newFileID(),
		Name:      name,
		Size:      len(f.Bytes()),
		CreatedAt: now,
		File:      f,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= s.max {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.files, oldest)
	}
	s.files[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec
}

func (s *FileStore) Get(id string) (*fileRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.files[id]
	return rec, ok
}

func (s *FileStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[id]; !ok {
		return false
	}
	delete(s.files, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *FileStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}

func newFileID() string {
	return "file_" + uuid.NewString()
}
