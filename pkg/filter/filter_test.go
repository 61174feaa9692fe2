package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFilter struct{}

func (failingFilter) ShouldKeep(context.Context, string) (bool, error) {
	return false, errors.New("lookup failed")
}

func TestFilterIdentifiers(t *testing.T) {
	ctx := context.Background()
	ids := []string{"100", "abc", "101", "", "102", "١٠٣"}

	got, err := FilterIdentifiers(ctx, ids,
		NewNumericFilter(),
		NewAlreadyHarvestedFilter(map[string]bool{"101": true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"100", "102"}, got)
}

func TestFilterIdentifiersNoFilters(t *testing.T) {
	got, err := FilterIdentifiers(context.Background(), []string{"b", "a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got)
}

func TestFilterIdentifiersError(t *testing.T) {
	_, err := FilterIdentifiers(context.Background(), []string{"1"}, failingFilter{})
	assert.ErrorContains(t, err, "session 1")
}
