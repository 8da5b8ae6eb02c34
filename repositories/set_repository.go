package repositories

import (
	"vocab-center/models"

	"gorm.io/gorm"
)

// SetRepository interface defines Set-related database operations
type SetRepository interface {
	Create(set *models.Set) error
	FindByID(id uint) (*models.Set, error)
	FindAll() ([]models.Set, error)
	Update(set *models.Set) error
	DeleteWithMemberships(setID uint) error
}

type setRepository struct {
	db *gorm.DB
}

// NewSetRepository creates a new SetRepository instance
func NewSetRepository(db *gorm.DB) SetRepository {
	return &setRepository{db: db}
}

func (r *setRepository) Create(set *models.Set) error {
	result := r.db.Create(set)
	return result.Error
}

func (r *setRepository) FindByID(id uint) (*models.Set, error) {
	var set models.Set
	result := r.db.First(&set, id)
	if result.Error != nil {
		return nil, result.Error
	}
	return &set, nil
}

func (r *setRepository) FindAll() ([]models.Set, error) {
	var sets []models.Set
	result := r.db.Find(&sets)
	if result.Error != nil {
		return nil, result.Error
	}
	return sets, nil
}

func (r *setRepository) Update(set *models.Set) error {
	result := r.db.Save(set)
	return result.Error
}

// DeleteWithMemberships removes every words_sets row referencing the set and
// then the set itself, inside one transaction. Same ordering requirement as
// word deletion: membership rows go first.
func (r *setRepository) DeleteWithMemberships(setID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("set_id = ?", setID).Delete(&models.WordSet{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Set{}, setID).Error
	})
}
