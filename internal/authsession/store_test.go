package authsession

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestStore_DeleteForEmployee(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	employeeID := uuid.New()
	pattern := fmt.Sprintf("authsess:%s:*", employeeID)
	keys := []string{
		fmt.Sprintf("authsess:%s:a", employeeID),
		fmt.Sprintf("authsess:%s:b", employeeID),
	}

	mock.ExpectScan(0, pattern, 100).SetVal(keys, 0)
	mock.ExpectDel(keys...).SetVal(2)

	n, err := NewStore(rdb).DeleteForEmployee(context.Background(), employeeID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteAllPaginatesCursor(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	mock.ExpectScan(0, "authsess:*", 100).SetVal([]string{"authsess:x:1"}, 42)
	mock.ExpectDel("authsess:x:1").SetVal(1)
	mock.ExpectScan(42, "authsess:*", 100).SetVal([]string{"authsess:y:2"}, 0)
	mock.ExpectDel("authsess:y:2").SetVal(1)

	n, err := NewStore(rdb).DeleteAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_DeleteAllEmptyIsNoError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()

	mock.ExpectScan(0, "authsess:*", 100).SetVal([]string{}, 0)

	// Running the global wipe twice must not fail when nothing is left.
	n, err := NewStore(rdb).DeleteAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
