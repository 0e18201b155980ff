package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrVersionConflict is returned when a versioned update finds the
	// document changed since it was read.
	ErrVersionConflict = errors.New("document was modified concurrently")
	// ErrDuplicateKey is returned when an insert violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// translateWriteError maps driver write errors onto repository sentinels.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}
	return err
}

// Server signals that a transaction should simply be retried. The driver does
// so inside session.WithTransaction; they mean contention, not an outage.
const (
	writeConflictCode              = 112
	transientTransactionLabel      = "TransientTransactionError"
	unknownTransactionCommitResult = "UnknownTransactionCommitResult"
)

// IsDatabaseError reports whether err signals an unhealthy database, as
// opposed to a conflict or a business rule rejecting the operation.
// Circuit breakers use it to decide what counts as a failure.
func IsDatabaseError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrVersionConflict) || errors.Is(err, ErrDuplicateKey) || errors.Is(err, context.Canceled) {
		return false
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, mongo.ErrClientDisconnected) {
		return true
	}
	var serverErr mongo.ServerError
	if !errors.As(err, &serverErr) {
		return false
	}
	return !isTransactionContention(serverErr)
}

func isTransactionContention(err mongo.ServerError) bool {
	return err.HasErrorCode(writeConflictCode) ||
		err.HasErrorLabel(transientTransactionLabel) ||
		err.HasErrorLabel(unknownTransactionCommitResult)
}
