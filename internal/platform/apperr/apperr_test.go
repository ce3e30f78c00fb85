// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/novol/internal/platform/apperr"
)

func TestAppError_Chain(t *testing.T) {
	root := errors.New("connection reset")
	err := fmt.Errorf("novel: create: %w", apperr.Database("insert_novel", root))

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.CodeDatabase, ae.Code)
	assert.ErrorIs(t, err, root)
	assert.Equal(t, "database error during insert_novel: connection reset", ae.Error())
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"encoding", apperr.Encoding("no usable encoding"), apperr.CodeEncoding},
		{"wrapped_duplicate", fmt.Errorf("x: %w", apperr.Duplicate("Novel", "t")), apperr.CodeDuplicate},
		{"plain_error", errors.New("boom"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperr.CodeOf(tt.err))
		})
	}
}

/*
TestAppError_Wrap verifies that sentinel errors are not mutated by Wrap.
*/
func TestAppError_Wrap(t *testing.T) {
	sentinel := apperr.Content("content too short")
	wrapped := sentinel.Wrap(errors.New("12 characters"))

	assert.Nil(t, sentinel.Cause)
	assert.Equal(t, "content too short: 12 characters", wrapped.Error())
	assert.True(t, apperr.IsAppError(wrapped))
}
