package services

import (
	"errors"
	"testing"
	"vocab-center/models"
	"vocab-center/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newVocabService(t *testing.T) (VocabService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewVocabService(repositories.NewWordRepository(db), repositories.NewSetRepository(db)), db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, Password: "irrelevant"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func membershipCount(t *testing.T, db *gorm.DB, wordID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.WordSet{}).Where("word_id = ?", wordID).Count(&count).Error)
	return count
}

func TestCreateWordRecordsCreator(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	word, err := svc.CreateWord(&CreateWordInput{Hanzi: "好", Pinyin: "hǎo", Translation: "good"}, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, word.CreatedID)
	assert.Equal(t, alice.ID, word.LastModifiedID)

	got, err := svc.GetWord(word.ID)
	require.NoError(t, err)
	assert.Equal(t, "好", got.Hanzi)
}

func TestUpdateWordByAnyUserBumpsLastModified(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	word, err := svc.CreateWord(&CreateWordInput{Hanzi: "学", Translation: "to study"}, alice.ID)
	require.NoError(t, err)

	newTranslation := "to learn"
	updated, err := svc.UpdateWord(word.ID, &UpdateWordInput{Translation: &newTranslation}, bob.ID)
	require.NoError(t, err)

	assert.Equal(t, "to learn", updated.Translation)
	assert.Equal(t, alice.ID, updated.CreatedID, "creator never changes")
	assert.Equal(t, bob.ID, updated.LastModifiedID)
}

func TestUpdateWordNotFound(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	pinyin := "ma"
	_, err := svc.UpdateWord(9999, &UpdateWordInput{Pinyin: &pinyin}, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteWordOwnership(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	word, err := svc.CreateWord(&CreateWordInput{Hanzi: "好"}, alice.ID)
	require.NoError(t, err)
	set, err := svc.CreateSet(&SetInput{Name: "HSK1"})
	require.NoError(t, err)
	require.NoError(t, svc.AddWordToSet(word.ID, set.ID))

	// Bob is not the creator: nothing may change
	err = svc.DeleteWord(word.ID, bob.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)

	_, err = svc.GetWord(word.ID)
	assert.NoError(t, err, "denied delete must leave the word in place")
	assert.Equal(t, int64(1), membershipCount(t, db, word.ID), "denied delete must leave memberships in place")

	// Alice is the creator: word and memberships go together
	require.NoError(t, svc.DeleteWord(word.ID, alice.ID))

	_, err = svc.GetWord(word.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), membershipCount(t, db, word.ID))
}

func TestDeleteWordCascadesAcrossSets(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	word, err := svc.CreateWord(&CreateWordInput{Hanzi: "书", Translation: "book"}, alice.ID)
	require.NoError(t, err)
	s1, err := svc.CreateSet(&SetInput{Name: "S1"})
	require.NoError(t, err)
	s2, err := svc.CreateSet(&SetInput{Name: "S2"})
	require.NoError(t, err)
	require.NoError(t, svc.AddWordToSet(word.ID, s1.ID))
	require.NoError(t, svc.AddWordToSet(word.ID, s2.ID))

	require.NoError(t, svc.DeleteWord(word.ID, alice.ID))

	for _, setID := range []uint{s1.ID, s2.ID} {
		words, err := svc.WordsInSet(setID)
		require.NoError(t, err)
		assert.Empty(t, words)
	}
	assert.Equal(t, int64(0), membershipCount(t, db, word.ID))
}

func TestMembershipLifecycle(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	word, err := svc.CreateWord(&CreateWordInput{Hanzi: "猫", Translation: "cat"}, alice.ID)
	require.NoError(t, err)
	set, err := svc.CreateSet(&SetInput{Name: "Animals"})
	require.NoError(t, err)

	require.NoError(t, svc.AddWordToSet(word.ID, set.ID))
	words, err := svc.WordsInSet(set.ID)
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, word.ID, words[0].ID)

	// Adding the same pair again is a distinct error, not a silent no-op
	err = svc.AddWordToSet(word.ID, set.ID)
	assert.ErrorIs(t, err, ErrDuplicateMembership)

	require.NoError(t, svc.RemoveWordFromSet(word.ID, set.ID))
	words, err = svc.WordsInSet(set.ID)
	require.NoError(t, err)
	assert.Empty(t, words)

	// Removing an absent pair is a no-op
	assert.NoError(t, svc.RemoveWordFromSet(word.ID, set.ID))
}

func TestAddMembershipMissingReference(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	word, err := svc.CreateWord(&CreateWordInput{Hanzi: "狗"}, alice.ID)
	require.NoError(t, err)
	set, err := svc.CreateSet(&SetInput{Name: "Animals"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.AddWordToSet(9999, set.ID), ErrMissingReference)
	assert.ErrorIs(t, svc.AddWordToSet(word.ID, 9999), ErrMissingReference)
	assert.Equal(t, int64(0), membershipCount(t, db, word.ID))
}

func TestDeleteSetKeepsWords(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	w1, err := svc.CreateWord(&CreateWordInput{Hanzi: "一"}, alice.ID)
	require.NoError(t, err)
	w2, err := svc.CreateWord(&CreateWordInput{Hanzi: "二"}, alice.ID)
	require.NoError(t, err)
	set, err := svc.CreateSet(&SetInput{Name: "HSK1"})
	require.NoError(t, err)
	require.NoError(t, svc.AddWordToSet(w1.ID, set.ID))
	require.NoError(t, svc.AddWordToSet(w2.ID, set.ID))

	require.NoError(t, svc.DeleteSet(set.ID))

	_, err = svc.WordsInSet(set.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The words survive independently
	_, err = svc.GetWord(w1.ID)
	assert.NoError(t, err)
	_, err = svc.GetWord(w2.ID)
	assert.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.WordSet{}).Where("set_id = ?", set.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSetsForWord(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	word, err := svc.CreateWord(&CreateWordInput{Hanzi: "好"}, alice.ID)
	require.NoError(t, err)
	s1, err := svc.CreateSet(&SetInput{Name: "S1"})
	require.NoError(t, err)
	s2, err := svc.CreateSet(&SetInput{Name: "S2"})
	require.NoError(t, err)
	require.NoError(t, svc.AddWordToSet(word.ID, s1.ID))
	require.NoError(t, svc.AddWordToSet(word.ID, s2.ID))

	setIDs, err := svc.SetsForWord(word.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{s1.ID, s2.ID}, setIDs)

	_, err = svc.SetsForWord(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWordsInSetDistinguishesMissingFromEmpty(t *testing.T) {
	svc, _ := newVocabService(t)

	set, err := svc.CreateSet(&SetInput{Name: "Empty"})
	require.NoError(t, err)

	words, err := svc.WordsInSet(set.ID)
	require.NoError(t, err)
	assert.Empty(t, words, "an existing empty set is an empty list, not an error")

	_, err = svc.WordsInSet(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

// failingSearchRepo errors on any store access; used to prove blank patterns
// never reach the store.
type failingSearchRepo struct {
	repositories.WordRepository
}

func (f failingSearchRepo) Search(pattern string) ([]models.Word, error) {
	return nil, errors.New("store must not be queried for a blank pattern")
}

func TestSearchBlankPatternSkipsStore(t *testing.T) {
	db := setupTestDB(t)
	svc := NewVocabService(failingSearchRepo{repositories.NewWordRepository(db)}, repositories.NewSetRepository(db))

	for _, pattern := range []string{"", "   ", "\t\n"} {
		words, err := svc.Search(pattern)
		require.NoError(t, err)
		assert.Empty(t, words)
	}
}

func TestSearchSubstringAcrossColumns(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	_, err := svc.CreateWord(&CreateWordInput{Hanzi: "学习", Pinyin: "xuéxí", Translation: "to study"}, alice.ID)
	require.NoError(t, err)
	_, err = svc.CreateWord(&CreateWordInput{Hanzi: "大学", Pinyin: "dàxué", Translation: "university"}, alice.ID)
	require.NoError(t, err)
	_, err = svc.CreateWord(&CreateWordInput{Hanzi: "猫", Pinyin: "māo", Translation: "cat, He studied cats"}, alice.ID)
	require.NoError(t, err)

	t.Run("Hanzi match", func(t *testing.T) {
		words, err := svc.Search("学")
		require.NoError(t, err)
		assert.Len(t, words, 2)
	})

	t.Run("Translation match", func(t *testing.T) {
		words, err := svc.Search("studied")
		require.NoError(t, err)
		assert.Len(t, words, 1)
	})

	t.Run("Pinyin match", func(t *testing.T) {
		words, err := svc.Search("māo")
		require.NoError(t, err)
		assert.Len(t, words, 1)
	})

	t.Run("No match", func(t *testing.T) {
		words, err := svc.Search("xyz")
		require.NoError(t, err)
		assert.Empty(t, words)
	})
}

func TestPracticeWordsReturnsAllWordsOfSet(t *testing.T) {
	svc, db := newVocabService(t)
	alice := seedUser(t, db, "alice")

	set, err := svc.CreateSet(&SetInput{Name: "Drill"})
	require.NoError(t, err)

	wantIDs := map[uint]bool{}
	for _, hanzi := range []string{"一", "二", "三", "四", "五"} {
		word, err := svc.CreateWord(&CreateWordInput{Hanzi: hanzi}, alice.ID)
		require.NoError(t, err)
		require.NoError(t, svc.AddWordToSet(word.ID, set.ID))
		wantIDs[word.ID] = true
	}

	words, err := svc.PracticeWords(set.ID)
	require.NoError(t, err)
	require.Len(t, words, len(wantIDs))
	for _, w := range words {
		assert.True(t, wantIDs[w.ID])
	}
}
