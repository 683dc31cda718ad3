package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination_Defaults(t *testing.T) {
	p := NormalizePagination(0, 0)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestNormalizePagination_CapsLimit(t *testing.T) {
	p := NormalizePagination(500, 40)
	assert.Equal(t, MaxLimit, p.Limit)
	assert.Equal(t, 40, p.Offset)
}

func TestNormalizePagination_NegativeValues(t *testing.T) {
	p := NormalizePagination(-5, -10)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}

func TestNormalizePagination_PassThrough(t *testing.T) {
	p := NormalizePagination(10, 30)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 30, p.Offset)
}
