package local

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	store *Store
}

type doc struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

func (s *StoreTestSuite) SetupTest() {
	store, err := Open(Config{InMemory: true})
	s.Require().NoError(err)
	s.store = store
}

func (s *StoreTestSuite) TearDownTest() {
	s.store.Close()
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}

func (s *StoreTestSuite) TestPutAndGet() {
	s.Require().NoError(s.store.Put("snapshot:room-1", doc{Text: "abc", Count: 2}))

	var got doc
	s.Require().NoError(s.store.Get("snapshot:room-1", &got))
	s.Equal(doc{Text: "abc", Count: 2}, got)
}

func (s *StoreTestSuite) TestGetMissing() {
	var got doc
	s.ErrorIs(s.store.Get("nope", &got), ErrNotFound)
}

func (s *StoreTestSuite) TestEmptyKey() {
	s.ErrorIs(s.store.Put("", doc{}), ErrEmptyKey)
	s.ErrorIs(s.store.Get("", &doc{}), ErrEmptyKey)
}

func (s *StoreTestSuite) TestKeysAndDelete() {
	s.Require().NoError(s.store.Put("stats:a", doc{}))
	s.Require().NoError(s.store.Put("stats:b", doc{}))
	s.Require().NoError(s.store.Put("snapshot:x", doc{}))

	keys, err := s.store.Keys("stats:")
	s.Require().NoError(err)
	s.ElementsMatch([]string{"stats:a", "stats:b"}, keys)

	s.Require().NoError(s.store.Delete("stats:a"))
	s.Require().NoError(s.store.Delete("stats:missing"))

	keys, err = s.store.Keys("stats:")
	s.Require().NoError(err)
	s.Equal([]string{"stats:b"}, keys)
}

func (s *StoreTestSuite) TestPersistentRequiresPath() {
	_, err := Open(Config{})
	s.ErrorIs(err, ErrMissingPath)
}
