// Package store wraps the multi-statement operations that must run as one
// atomic unit. Single-statement reads and writes go straight through gorm
// in the handlers; only composite work belongs here.
package store

import (
	"gorm.io/gorm"

	"github.com/diewo77/case-archive/internal/models"
)

type Store struct{ DB *gorm.DB }

func New(db *gorm.DB) *Store { return &Store{DB: db} }

// TxStep is one statement inside a unit of work.
type TxStep func(tx *gorm.DB) error

// InTx runs the steps inside a single transaction. Any step error rolls
// back every previous step.
func (s *Store) InTx(steps ...TxStep) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, step := range steps {
			if err := step(tx); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCaseFiles removes every file owned by the case.
func DeleteCaseFiles(caseID string) TxStep {
	return func(tx *gorm.DB) error {
		return tx.Where("case_id = ?", caseID).Delete(&models.File{}).Error
	}
}

// DeleteCasePeople removes every person owned by the case.
func DeleteCasePeople(caseID string) TxStep {
	return func(tx *gorm.DB) error {
		return tx.Where("case_id = ?", caseID).Delete(&models.Person{}).Error
	}
}

// DeleteCaseRow removes the case itself and fails if no row matched, so a
// cascade against a missing case surfaces as an error instead of a no-op.
func DeleteCaseRow(caseID string) TxStep {
	return func(tx *gorm.DB) error {
		res := tx.Where("id = ?", caseID).Delete(&models.Case{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}
}

// DeleteCaseCascade removes a case and all of its files and people as one
// all-or-nothing unit. Children go first to satisfy the referential
// constraints; an interrupted delete leaves nothing orphaned.
func (s *Store) DeleteCaseCascade(caseID string) error {
	return s.InTx(
		DeleteCaseFiles(caseID),
		DeleteCasePeople(caseID),
		DeleteCaseRow(caseID),
	)
}
