package handler

import (
	"testing"

	"github.com/d-lino-kee/skill-swap-platform/internal/config"
	"github.com/d-lino-kee/skill-swap-platform/internal/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB swaps the global gorm handle for one backed by sqlmock.
// Default per-statement transactions are disabled so expectations only see
// BEGIN/COMMIT around explicit transactions.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	database.DB = gormDB
	return mock
}

// testRouter returns an engine whose middleware injects the given identity,
// standing in for the JWT middleware.
func testRouter(userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	return router
}

func init() {
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}
}
