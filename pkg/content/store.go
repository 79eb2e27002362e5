package content

import (
	"fmt"

	"sectionbot/pkg/store"
)

const contentDocument = "content"

// Store loads and saves the section tree through the document store.
//
// There is no caching: every Load re-reads the backing document, and every
// Save overwrites it whole. Concurrent read-modify-write cycles can lose
// updates; that hazard is accepted, not mitigated.
type Store struct {
	docs *store.DocumentStore
}

// NewStore wraps a document store.
func NewStore(docs *store.DocumentStore) *Store {
	return &Store{docs: docs}
}

// Load reads the tree. A missing document yields an empty tree, never an
// error. Loaded sections are normalized so absent fields never propagate:
// nil button lists become empty, media without a file id becomes absent.
func (s *Store) Load() (Tree, error) {
	tree := Tree{}
	if err := s.docs.Read(contentDocument, &tree); err != nil {
		return nil, fmt.Errorf("load content tree: %w", err)
	}

	for id, section := range tree {
		tree[id] = normalize(section)
	}

	return tree, nil
}

// Save overwrites the whole tree document.
func (s *Store) Save(tree Tree) error {
	if err := s.docs.Write(contentDocument, tree); err != nil {
		return fmt.Errorf("save content tree: %w", err)
	}

	return nil
}

func normalize(section Section) Section {
	if section.Buttons == nil {
		section.Buttons = []Row{}
	}
	if !section.Media.Present() {
		section.Media = Media{}
	}

	return section
}
