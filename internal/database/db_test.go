package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mstepanov/cinema-booking/internal/config"
)

func TestDSN_WithPassword(t *testing.T) {
	cfg := config.Config{DBUser: "app", DBPass: "s3cret", DBHost: "db", DBPort: "3306", DBName: "cinema"}

	assert.Equal(t,
		"app:s3cret@tcp(db:3306)/cinema?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN(cfg))
}

func TestDSN_WithoutPassword(t *testing.T) {
	cfg := config.Config{DBUser: "root", DBHost: "127.0.0.1", DBPort: "3307", DBName: "cinema_test"}

	assert.Equal(t,
		"root@tcp(127.0.0.1:3307)/cinema_test?charset=utf8mb4&parseTime=true&loc=UTC",
		DSN(cfg))
}
