package services

import (
	"errors"
	"math/rand"
	"strings"
	"vocab-center/models"
	"vocab-center/repositories"

	"gorm.io/gorm"
)

// The VocabService interface maintains words, sets and their membership
// relation with referential integrity: membership rows are always removed
// before the word or set they reference.
type VocabService interface {
	CreateWord(input *CreateWordInput, actingUserID uint) (*models.Word, error)
	UpdateWord(wordID uint, input *UpdateWordInput, actingUserID uint) (*models.Word, error)
	DeleteWord(wordID uint, actingUserID uint) error
	GetWord(wordID uint) (*models.Word, error)
	ListWords(page int, pageSize int) ([]models.Word, int64, error)
	Search(pattern string) ([]models.Word, error)
	SetsForWord(wordID uint) ([]uint, error)
	ListWordClasses() ([]models.WordClass, error)

	CreateSet(input *SetInput) (*models.Set, error)
	UpdateSet(setID uint, input *SetInput) (*models.Set, error)
	DeleteSet(setID uint) error
	GetSet(setID uint) (*models.Set, error)
	ListSets() ([]models.Set, error)

	AddWordToSet(wordID uint, setID uint) error
	RemoveWordFromSet(wordID uint, setID uint) error
	WordsInSet(setID uint) ([]models.Word, error)
	PracticeWords(setID uint) ([]models.Word, error)
}

// --- Structs for Input/Output ---
type CreateWordInput struct {
	Hanzi       string `json:"hanzi"`
	Pinyin      string `json:"pinyin"`
	Translation string `json:"translation"`
	Comment     string `json:"comment"`
	WordClassID uint   `json:"word_class_id"`
}

type UpdateWordInput struct {
	// Pointers distinguish "not provided" from "set to empty".
	Hanzi       *string `json:"hanzi"`
	Pinyin      *string `json:"pinyin"`
	Translation *string `json:"translation"`
	Comment     *string `json:"comment"`
	WordClassID *uint   `json:"word_class_id"`
}

type SetInput struct {
	Name    string `json:"name"`
	Comment string `json:"comment"`
}

type vocabService struct {
	words repositories.WordRepository
	sets  repositories.SetRepository
}

var _ VocabService = (*vocabService)(nil)

// NewVocabService creates a new VocabService instance
func NewVocabService(words repositories.WordRepository, sets repositories.SetRepository) VocabService {
	return &vocabService{words: words, sets: sets}
}

// CreateWord records the acting user as both creator and last modifier. There
// is no uniqueness constraint on hanzi.
func (s *vocabService) CreateWord(input *CreateWordInput, actingUserID uint) (*models.Word, error) {
	word := models.Word{
		Hanzi:          input.Hanzi,
		Pinyin:         input.Pinyin,
		Translation:    input.Translation,
		Comment:        input.Comment,
		WordClassID:    input.WordClassID,
		CreatedID:      actingUserID,
		LastModifiedID: actingUserID,
	}

	if err := s.words.Create(&word); err != nil {
		return nil, storeError(err)
	}
	return &word, nil
}

// UpdateWord overwrites the mutable fields and bumps LastModifiedID. Any
// authenticated user may edit any word; only deletion is ownership-gated.
func (s *vocabService) UpdateWord(wordID uint, input *UpdateWordInput, actingUserID uint) (*models.Word, error) {
	word, err := s.words.FindByID(wordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}

	if input.Hanzi != nil {
		word.Hanzi = *input.Hanzi
	}
	if input.Pinyin != nil {
		word.Pinyin = *input.Pinyin
	}
	if input.Translation != nil {
		word.Translation = *input.Translation
	}
	if input.Comment != nil {
		word.Comment = *input.Comment
	}
	if input.WordClassID != nil {
		word.WordClassID = *input.WordClassID
	}
	word.LastModifiedID = actingUserID

	if err := s.words.Update(word); err != nil {
		return nil, storeError(err)
	}
	return word, nil
}

// DeleteWord is the only ownership-gated operation: a non-creator gets
// ErrPermissionDenied and nothing is mutated. For the creator, the word's
// membership rows and the word itself go in one transaction.
func (s *vocabService) DeleteWord(wordID uint, actingUserID uint) error {
	word, err := s.words.FindByID(wordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}

	if word.CreatedID != actingUserID {
		return ErrPermissionDenied
	}

	if err := s.words.DeleteWithMemberships(wordID); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *vocabService) GetWord(wordID uint) (*models.Word, error) {
	word, err := s.words.FindByID(wordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return word, nil
}

func (s *vocabService) ListWords(page int, pageSize int) ([]models.Word, int64, error) {
	words, total, err := s.words.FindAll(page, pageSize)
	if err != nil {
		return nil, 0, storeError(err)
	}
	return words, total, nil
}

// Search runs an OR'd substring match over hanzi, pinyin and translation. An
// empty or whitespace-only pattern returns an empty result without querying
// the store.
func (s *vocabService) Search(pattern string) ([]models.Word, error) {
	if strings.TrimSpace(pattern) == "" {
		return []models.Word{}, nil
	}

	words, err := s.words.Search(pattern)
	if err != nil {
		return nil, storeError(err)
	}
	return words, nil
}

// SetsForWord lists the ids of every set the word belongs to, for the word
// detail view. A missing word is ErrNotFound.
func (s *vocabService) SetsForWord(wordID uint) ([]uint, error) {
	if _, err := s.words.FindByID(wordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}

	setIDs, err := s.words.SetIDsForWord(wordID)
	if err != nil {
		return nil, storeError(err)
	}
	return setIDs, nil
}

func (s *vocabService) ListWordClasses() ([]models.WordClass, error) {
	classes, err := s.words.WordClasses()
	if err != nil {
		return nil, storeError(err)
	}
	return classes, nil
}

// CreateSet has no ownership restriction, asymmetric with words.
func (s *vocabService) CreateSet(input *SetInput) (*models.Set, error) {
	set := models.Set{Name: input.Name, Comment: input.Comment}
	if err := s.sets.Create(&set); err != nil {
		return nil, storeError(err)
	}
	return &set, nil
}

func (s *vocabService) UpdateSet(setID uint, input *SetInput) (*models.Set, error) {
	set, err := s.sets.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}

	set.Name = input.Name
	set.Comment = input.Comment
	if err := s.sets.Update(set); err != nil {
		return nil, storeError(err)
	}
	return set, nil
}

// DeleteSet cascades: membership rows first, then the set, in one
// transaction. The words themselves are untouched.
func (s *vocabService) DeleteSet(setID uint) error {
	if _, err := s.sets.FindByID(setID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storeError(err)
	}

	if err := s.sets.DeleteWithMemberships(setID); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *vocabService) GetSet(setID uint) (*models.Set, error) {
	set, err := s.sets.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}
	return set, nil
}

func (s *vocabService) ListSets() ([]models.Set, error) {
	sets, err := s.sets.FindAll()
	if err != nil {
		return nil, storeError(err)
	}
	return sets, nil
}

// AddWordToSet inserts the membership pair. A missing word or set is
// ErrMissingReference; inserting an existing pair is ErrDuplicateMembership,
// a distinct error rather than a silent no-op.
func (s *vocabService) AddWordToSet(wordID uint, setID uint) error {
	if err := s.words.AddToSet(wordID, setID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMissingReference
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateMembership
		}
		return storeError(err)
	}
	return nil
}

// RemoveWordFromSet is idempotent: removing a pair that is not present is a
// no-op, not an error.
func (s *vocabService) RemoveWordFromSet(wordID uint, setID uint) error {
	if err := s.words.RemoveFromSet(wordID, setID); err != nil {
		return storeError(err)
	}
	return nil
}

// WordsInSet returns the set's words via the join relation. A missing set is
// ErrNotFound, distinct from a set that is merely empty.
func (s *vocabService) WordsInSet(setID uint) ([]models.Word, error) {
	if _, err := s.sets.FindByID(setID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storeError(err)
	}

	words, err := s.words.FindBySet(setID)
	if err != nil {
		return nil, storeError(err)
	}
	return words, nil
}

// PracticeWords is WordsInSet in shuffled order, for drill views.
func (s *vocabService) PracticeWords(setID uint) ([]models.Word, error) {
	words, err := s.WordsInSet(setID)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	return words, nil
}
