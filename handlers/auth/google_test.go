package auth

import (
	"errors"
	"testing"
)

func TestIsDuplicateKey(t *testing.T) {
	duplicates := []error{
		errors.New(`pq: duplicate key value violates unique constraint "idx_users_external_id"`),
		errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email" (SQLSTATE 23505)`),
	}
	for _, err := range duplicates {
		if !isDuplicateKey(err) {
			t.Errorf("expected %q to classify as duplicate key", err)
		}
	}

	others := []error{
		nil,
		errors.New("connection refused"),
		errors.New(`pq: null value in column "email" violates not-null constraint`),
	}
	for _, err := range others {
		if isDuplicateKey(err) {
			t.Errorf("expected %v not to classify as duplicate key", err)
		}
	}
}
