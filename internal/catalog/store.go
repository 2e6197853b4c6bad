package catalog

import "github.com/mtgtools/buylistdb/internal/domain"

// Store aggregates fetched set documents keyed by set code. Iteration
// order is the insertion order of the first Put for each code; a refetch
// replaces the document in place, it never appends a second copy.
type Store struct {
	docs  map[string]*domain.SetDocument
	order []string
}

func NewStore() *Store {
	return &Store{docs: make(map[string]*domain.SetDocument)}
}

// Put stores a set document, replacing any prior document for the same
// set code while keeping its original position.
func (s *Store) Put(doc *domain.SetDocument) {
	if _, ok := s.docs[doc.SetCode]; !ok {
		s.order = append(s.order, doc.SetCode)
	}
	s.docs[doc.SetCode] = doc
}

// Get returns the document for a set code, if loaded.
func (s *Store) Get(setCode string) (*domain.SetDocument, bool) {
	doc, ok := s.docs[setCode]
	return doc, ok
}

// SetCodes returns the loaded set codes in insertion order.
func (s *Store) SetCodes() []string {
	return s.order
}

// Len returns the number of loaded sets.
func (s *Store) Len() int {
	return len(s.docs)
}
