// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToPgx5DSN(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
		want string
	}{
		{"postgres_scheme", "postgres://u:p@db:5432/novol", "pgx5://u:p@db:5432/novol"},
		{"postgresql_scheme", "postgresql://db/novol?sslmode=disable", "pgx5://db/novol?sslmode=disable"},
		{"already_pgx5", "pgx5://db/novol", "pgx5://db/novol"},
		{"keyword_dsn", "host=db dbname=novol", "host=db dbname=novol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toPgx5DSN(tt.dsn))
		})
	}
}
