package models

import "gorm.io/gorm"

// Set groups words for studying. Any authenticated user may create, edit or
// delete any set.
type Set struct {
	gorm.Model
	Name    string `gorm:"not null"`
	Comment string
}

// WordSet is the words-to-sets join relation, keyed on the pair itself. The
// schema has no cascading deletes, so every WordSet row must be removed
// explicitly before the word or set it references is removed.
type WordSet struct {
	WordID uint `gorm:"primaryKey"`
	SetID  uint `gorm:"primaryKey"`
}

func (WordSet) TableName() string {
	return "words_sets"
}
