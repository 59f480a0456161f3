package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageQuery_Normalize(t *testing.T) {
	cases := []struct {
		name     string
		in       PageQuery
		wantPage int
		wantSize int
	}{
		{"零值回退默认", PageQuery{}, 1, 10},
		{"负数回退默认", PageQuery{Page: -3, PageSize: -1}, 1, 10},
		{"超上限截断", PageQuery{Page: 2, PageSize: 500}, 2, 50},
		{"合法值不动", PageQuery{Page: 3, PageSize: 20}, 3, 20},
	}
	for _, tc := range cases {
		tc.in.Normalize()
		assert.Equal(t, tc.wantPage, tc.in.Page, tc.name)
		assert.Equal(t, tc.wantSize, tc.in.PageSize, tc.name)
	}
}

func TestPageQuery_Offset(t *testing.T) {
	q := PageQuery{Page: 3, PageSize: 20}
	assert.Equal(t, 40, q.Offset())

	q = PageQuery{Page: 1, PageSize: 10}
	assert.Equal(t, 0, q.Offset())
}
