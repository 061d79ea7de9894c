// Copyright (c) 2026 Inkwell Press. All rights reserved.
// Author: dev@inkwell.press

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell-press/inkwell/pkg/pagination"
)

func TestFromRequest_Clamping(t *testing.T) {
	testCases := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", query: "", wantPage: 1, wantLimit: pagination.DefaultLimit},
		{name: "explicit values", query: "page=3&limit=50", wantPage: 3, wantLimit: 50},
		{name: "zero page clamps", query: "page=0", wantPage: 1, wantLimit: pagination.DefaultLimit},
		{name: "negative limit clamps", query: "limit=-5", wantPage: 1, wantLimit: pagination.DefaultLimit},
		{name: "excessive limit clamps", query: "limit=5000", wantPage: 1, wantLimit: pagination.DefaultLimit},
		{name: "garbage falls back", query: "page=abc&limit=xyz", wantPage: 1, wantLimit: pagination.DefaultLimit},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/api/v1/books?"+testCase.query, nil)

			params := pagination.FromRequest(request)

			assert.Equal(t, testCase.wantPage, params.Page)
			assert.Equal(t, testCase.wantLimit, params.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, pagination.Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, pagination.Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, pagination.Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, pagination.Params{Page: 0, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := pagination.NewMeta(pagination.Params{Page: 2, Limit: 20}, 45)

	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	assert.Equal(t, 0, pagination.NewMeta(pagination.Params{Page: 1, Limit: 20}, 0).TotalPages)
	assert.Equal(t, 1, pagination.NewMeta(pagination.Params{Page: 1, Limit: 20}, 20).TotalPages)
}
