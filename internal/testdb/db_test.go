package testdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetTestDatabaseURL(t *testing.T) {
	tests := []struct {
		name     string
		database string
		test     string
		want     string
	}{
		{name: "none set", want: ""},
		{name: "database url", database: "postgres://a/db", want: "postgres://a/db"},
		{name: "test url", test: "postgres://b/db", want: "postgres://b/db"},
		{name: "database url wins", database: "postgres://a/db", test: "postgres://b/db", want: "postgres://a/db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", tt.database)
			t.Setenv("TASK_TEST_DB_URL", tt.test)

			assert.Equal(t, tt.want, GetTestDatabaseURL())
			assert.Equal(t, tt.want == "", ShouldSkipDatabaseTest())
		})
	}
}
