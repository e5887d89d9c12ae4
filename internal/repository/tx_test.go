package repository

import (
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishTxCommitsWhenNoError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	var opErr error
	finishTx(tx, &opErr)
	assert.NoError(t, opErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)

	opErr := errors.New("insert failed")
	finishTx(tx, &opErr)
	// The original error survives the rollback.
	assert.EqualError(t, opErr, "insert failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishTxSurfacesCommitFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection lost"))

	tx, err := db.Begin()
	require.NoError(t, err)

	var opErr error
	finishTx(tx, &opErr)
	assert.EqualError(t, opErr, "connection lost")
}
