package codes

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^[A-Z]+\d{6}\d{4}$`)

func neverExists(context.Context, string) (bool, error) {
	return false, nil
}

func TestGenerateFormat(t *testing.T) {
	for _, prefix := range []string{PrefixOrder, PrefixInvoice, PrefixCustomer, PrefixCompany} {
		code, err := Generate(context.Background(), prefix, neverExists)
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
		assert.Equal(t, prefix+time.Now().Format("060102"), code[:len(prefix)+6])
	}
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	var seen []string
	exists := func(_ context.Context, candidate string) (bool, error) {
		seen = append(seen, candidate)
		return len(seen) < 3, nil
	}

	code, err := Generate(context.Background(), PrefixSupplier, exists)
	require.NoError(t, err)
	assert.Len(t, seen, 3)
	assert.Equal(t, seen[2], code)
}

func TestGeneratePropagatesExistsError(t *testing.T) {
	exists := func(context.Context, string) (bool, error) {
		return false, fmt.Errorf("db down")
	}

	_, err := Generate(context.Background(), PrefixOrder, exists)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}

func TestGenerateGivesUpEventually(t *testing.T) {
	alwaysTaken := func(context.Context, string) (bool, error) {
		return true, nil
	}

	_, err := Generate(context.Background(), PrefixOrder, alwaysTaken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted")
}

func TestNextSequential(t *testing.T) {
	assert.Equal(t, "1", NextSequential(""))
	assert.Equal(t, "1", NextSequential("CAT2602273603"))
	assert.Equal(t, "2", NextSequential("1"))
	assert.Equal(t, "43", NextSequential("42"))
}

func TestRandomDigitsLengthAndAlphabet(t *testing.T) {
	code, err := RandomDigits(6)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)
}

func TestRandomTokenLength(t *testing.T) {
	token, err := RandomToken(64)
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Regexp(t, `^[A-Za-z0-9]+$`, token)
}
