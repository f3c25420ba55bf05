package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wasel-app/wasel-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func restaurantRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "vendor_id", "name", "name_ar", "phone", "address",
		"is_open", "is_temporarily_closed", "temporary_close_reason",
		"opening_time", "closing_time", "working_days", "created_at", "updated_at",
	})
}

func TestRestaurantRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRestaurantRepository(db)
	rows := restaurantRows().
		AddRow("rest-1", "vendor-1", "Shawarma House", "بيت الشاورما", "+96650000000", "Riyadh",
			true, false, nil, "08:00", "23:00", "0,1,2,3,4,5,6", time.Now(), time.Now())
	mock.ExpectQuery("SELECT (.+) FROM restaurants WHERE id").
		WithArgs("rest-1").
		WillReturnRows(rows)

	restaurant, err := repo.FindByID(context.Background(), "rest-1")
	require.NoError(t, err)
	assert.Equal(t, "Shawarma House", restaurant.Name)
	assert.True(t, restaurant.IsOpen)
	assert.Equal(t, "0,1,2,3,4,5,6", restaurant.WorkingDays)
}

func TestRestaurantRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRestaurantRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM restaurants WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRestaurantRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRestaurantRepository(db)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("%shawarma%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM restaurants").
		WithArgs("%shawarma%", 20, 0).
		WillReturnRows(restaurantRows().
			AddRow("rest-1", "vendor-1", "Shawarma House", "بيت الشاورما", "", "",
				true, false, nil, "08:00", "23:00", "5,6", time.Now(), time.Now()))

	restaurants, total, err := repo.List(context.Background(), models.RestaurantFilter{Search: "shawarma"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, restaurants, 1)
	assert.Equal(t, "5,6", restaurants[0].WorkingDays)
}

func TestRestaurantRepositoryUpdateSchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRestaurantRepository(db)
	mock.ExpectExec("UPDATE restaurants").
		WithArgs(true, "09:00", "01:00", "0,1,2,3,4", sqlmock.AnyArg(), "rest-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	restaurant := &models.Restaurant{
		ID:          "rest-1",
		IsOpen:      true,
		OpeningTime: "09:00",
		ClosingTime: "01:00",
		WorkingDays: "0,1,2,3,4",
	}
	require.NoError(t, repo.UpdateSchedule(context.Background(), restaurant))
}

func TestRestaurantRepositoryUpdateScheduleMissingRow(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRestaurantRepository(db)
	mock.ExpectExec("UPDATE restaurants").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateSchedule(context.Background(), &models.Restaurant{ID: "missing"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRestaurantRepositorySetTemporaryClosure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewRestaurantRepository(db)
	reason := "نفدت المكونات"
	mock.ExpectExec("UPDATE restaurants").
		WithArgs(true, reason, sqlmock.AnyArg(), "rest-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetTemporaryClosure(context.Background(), "rest-1", true, &reason))
}
