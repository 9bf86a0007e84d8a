package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/giftboxhq/giftbox-platform/internal/models"
	repository "github.com/giftboxhq/giftbox-platform/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserRepoTest(t *testing.T) (repository.UserRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err, "Failed to create sqlmock")

	t.Cleanup(func() {
		db.Close()
	})

	repo := repository.NewUserRepo(db)
	require.NotNil(t, repo, "NewUserRepo should return a non-nil repository")

	return repo, mock
}

var userCols = []string{"id", "name", "email", "phone", "password", "created_at", "updated_at"}

func TestUserRepository(t *testing.T) {
	repo, mock := setupUserRepoTest(t)
	ctx := t.Context()

	t.Run("CreateUser", func(t *testing.T) {
		expectedSQL := regexp.QuoteMeta(`
			INSERT INTO users (id, name, email, phone, password, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING id, created_at, updated_at
		`)

		t.Run("Success - Assigns ID When Missing", func(t *testing.T) {
			// Arrange
			user := &models.User{
				Name:     "Jordan Lee",
				Email:    "jordan@example.com",
				Phone:    "+15550100",
				Password: "hashed",
			}
			now := time.Now()

			mock.ExpectQuery(expectedSQL).
				WithArgs(sqlmock.AnyArg(), user.Name, user.Email, user.Phone, user.Password).
				WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
					AddRow(uuid.New(), now, now))

			// Act
			err := repo.CreateUser(ctx, user)

			// Assert
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Database Error", func(t *testing.T) {
			// Arrange
			dbError := errors.New("database insertion error")
			mock.ExpectQuery(expectedSQL).
				WillReturnError(dbError)

			// Act
			err := repo.CreateUser(ctx, &models.User{Email: "jordan@example.com"})

			// Assert
			require.Error(t, err)
			assert.Equal(t, dbError, err)
		})
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		expectedSQL := `SELECT (.+) FROM users\s+WHERE email = \$1`

		t.Run("Success", func(t *testing.T) {
			// Arrange
			id := uuid.New()
			now := time.Now()

			mock.ExpectQuery(expectedSQL).
				WithArgs("jordan@example.com").
				WillReturnRows(sqlmock.NewRows(userCols).
					AddRow(id, "Jordan Lee", "jordan@example.com", "+15550100", "hashed", now, now))

			// Act
			user, err := repo.GetUserByEmail(ctx, "jordan@example.com")

			// Assert
			require.NoError(t, err)
			assert.Equal(t, id, user.ID)
			assert.Equal(t, "hashed", user.Password)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Not Found", func(t *testing.T) {
			// Arrange
			mock.ExpectQuery(expectedSQL).
				WithArgs("nobody@example.com").
				WillReturnError(sql.ErrNoRows)

			// Act
			user, err := repo.GetUserByEmail(ctx, "nobody@example.com")

			// Assert
			require.Error(t, err)
			assert.ErrorIs(t, err, sql.ErrNoRows)
			assert.Nil(t, user)
		})
	})

	t.Run("GetUserByID", func(t *testing.T) {
		expectedSQL := `SELECT (.+) FROM users\s+WHERE id = \$1`

		t.Run("Success", func(t *testing.T) {
			// Arrange
			id := uuid.New()
			now := time.Now()

			mock.ExpectQuery(expectedSQL).
				WithArgs(id).
				WillReturnRows(sqlmock.NewRows(userCols).
					AddRow(id, "Jordan Lee", "jordan@example.com", "+15550100", "hashed", now, now))

			// Act
			user, err := repo.GetUserByID(ctx, id)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, "jordan@example.com", user.Email)
			require.NoError(t, mock.ExpectationsWereMet(), "SQL mock expectations were not met")
		})

		t.Run("Failure - Database Error", func(t *testing.T) {
			// Arrange
			id := uuid.New()
			mock.ExpectQuery(expectedSQL).
				WithArgs(id).
				WillReturnError(errors.New("connection reset"))

			// Act
			user, err := repo.GetUserByID(ctx, id)

			// Assert
			require.Error(t, err)
			assert.ErrorContains(t, err, "failed to get user by id")
			assert.Nil(t, user)
		})
	})
}
