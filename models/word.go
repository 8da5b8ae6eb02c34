package models

import "gorm.io/gorm"

// Word is a single vocabulary entry. CreatedID records the creator and never
// changes after insert; only the creator may delete the word. LastModifiedID
// is bumped on every edit, by whoever edits.
type Word struct {
	gorm.Model
	Hanzi          string `gorm:"not null"`
	Pinyin         string
	Translation    string
	Comment        string
	WordClassID    uint
	CreatedID      uint `gorm:"not null"`
	LastModifiedID uint
}

// WordClass is read-only reference data (noun, verb, ...). Seeded at startup,
// never mutated by the application.
type WordClass struct {
	gorm.Model
	Name string `gorm:"unique;not null"`
}
