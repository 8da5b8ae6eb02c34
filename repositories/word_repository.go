package repositories

import (
	"vocab-center/models"

	"gorm.io/gorm"
)

// WordRepository interface defines Word-related database operations,
// including the words_sets membership rows that hang off a word.
type WordRepository interface {
	Create(word *models.Word) error
	FindByID(id uint) (*models.Word, error)
	FindAll(page int, pageSize int) ([]models.Word, int64, error)
	Update(word *models.Word) error
	Search(pattern string) ([]models.Word, error)
	SetIDsForWord(wordID uint) ([]uint, error)
	DeleteWithMemberships(wordID uint) error
	AddToSet(wordID uint, setID uint) error
	RemoveFromSet(wordID uint, setID uint) error
	FindBySet(setID uint) ([]models.Word, error)
	WordClasses() ([]models.WordClass, error)
}

type wordRepository struct {
	db *gorm.DB
}

// NewWordRepository creates a new WordRepository instance
func NewWordRepository(db *gorm.DB) WordRepository {
	return &wordRepository{db: db}
}

func (r *wordRepository) Create(word *models.Word) error {
	result := r.db.Create(word)
	return result.Error
}

func (r *wordRepository) FindByID(id uint) (*models.Word, error) {
	var word models.Word
	result := r.db.First(&word, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &word, nil
}

// FindAll Pagination find all Words
func (r *wordRepository) FindAll(page int, pageSize int) ([]models.Word, int64, error) {
	offset := (page - 1) * pageSize
	var words []models.Word
	var total int64

	if err := r.db.Model(&models.Word{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := r.db.Offset(offset).Limit(pageSize).Find(&words)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return words, total, nil
}

func (r *wordRepository) Update(word *models.Word) error {
	result := r.db.Save(word)
	return result.Error
}

// Search matches the pattern as a substring of hanzi, pinyin or translation.
func (r *wordRepository) Search(pattern string) ([]models.Word, error) {
	var words []models.Word
	like := "%" + pattern + "%"
	result := r.db.
		Where("hanzi LIKE ? OR pinyin LIKE ? OR translation LIKE ?", like, like, like).
		Find(&words)
	if result.Error != nil {
		return nil, result.Error
	}
	return words, nil
}

// SetIDsForWord lists the ids of every set the word currently belongs to.
func (r *wordRepository) SetIDsForWord(wordID uint) ([]uint, error) {
	var setIDs []uint
	result := r.db.Model(&models.WordSet{}).Where("word_id = ?", wordID).Pluck("set_id", &setIDs)
	if result.Error != nil {
		return nil, result.Error
	}
	return setIDs, nil
}

// DeleteWithMemberships removes every words_sets row referencing the word and
// then the word itself, inside one transaction. The schema has no cascading
// deletes, so the ordering here is what keeps the join relation free of
// dangling references.
func (r *wordRepository) DeleteWithMemberships(wordID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("word_id = ?", wordID).Delete(&models.WordSet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Word{}, wordID).Error
	})
}

// AddToSet inserts the membership pair. Both endpoints are verified inside the
// transaction; a missing word or set is reported via gorm.ErrRecordNotFound
// and a duplicate pair via the composite-key constraint.
func (r *wordRepository) AddToSet(wordID uint, setID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var word models.Word
		if err := tx.Select("id").First(&word, wordID).Error; err != nil {
			return err
		}
		var set models.Set
		if err := tx.Select("id").First(&set, setID).Error; err != nil {
			return err
		}
		return tx.Create(&models.WordSet{WordID: wordID, SetID: setID}).Error
	})
}

// RemoveFromSet deletes the membership pair if present. Removing an absent
// pair is a no-op.
func (r *wordRepository) RemoveFromSet(wordID uint, setID uint) error {
	result := r.db.Where("word_id = ? AND set_id = ?", wordID, setID).Delete(&models.WordSet{})
	return result.Error
}

// FindBySet returns the words linked to a set via words_sets.
func (r *wordRepository) FindBySet(setID uint) ([]models.Word, error) {
	var words []models.Word
	result := r.db.
		Joins("JOIN words_sets ON words_sets.word_id = words.id").
		Where("words_sets.set_id = ?", setID).
		Find(&words)
	if result.Error != nil {
		return nil, result.Error
	}
	return words, nil
}

func (r *wordRepository) WordClasses() ([]models.WordClass, error) {
	var classes []models.WordClass
	result := r.db.Find(&classes)
	if result.Error != nil {
		return nil, result.Error
	}
	return classes, nil
}
