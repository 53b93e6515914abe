package validator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/querent/internal/deck"
)

func validate(t *testing.T, content string) ValidationResults {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cards.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	results, err := NewValidator(path).Validate()
	require.NoError(t, err)
	return results
}

func TestBuiltinDeckIsClean(t *testing.T) {
	v := NewValidator("")
	results, err := v.ValidateReader(strings.NewReader(string(deck.BuiltinCSV())))
	require.NoError(t, err)
	assert.True(t, results.Valid(), results.Errors)
	assert.Empty(t, results.Warnings)
}

func TestMissingFile(t *testing.T) {
	_, err := NewValidator(filepath.Join(t.TempDir(), "nope.csv")).Validate()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "empty file",
			content: "",
			want:    []string{"file is empty"},
		},
		{
			name:    "missing columns",
			content: "Card,Code\nThe Fool,m00\n",
			want:    []string{`missing required column "Keyword"`, `missing required column "Reversed"`},
		},
		{
			name:    "header only",
			content: "Card,Code,Keyword,Reversed\n",
			want:    []string{"no cards found"},
		},
		{
			name: "every bad row reported",
			content: "Card,Code,Keyword,Reversed\n" +
				"The Fool,m00,a,b\n" +
				",m01,a,b\n" +
				"The Magician,,a,b\n" +
				"The Empress,m00,a,b\n" +
				"The Emperor,m04,a\n",
			want: []string{
				"line 3: empty Card",
				"line 4: empty Code",
				`line 5: duplicate Code "m00" (first on line 2)`,
				"line 6: expected 4 fields, found 3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := validate(t, tt.content)
			assert.False(t, results.Valid())
			assert.Equal(t, tt.want, results.Errors)
		})
	}
}

func TestValidateWarnings(t *testing.T) {
	results := validate(t, "\ufeffCode,Card,Keyword,Reversed,Card\n"+
		"m00,The Fool,new beginnings,,extra\n"+
		"m01,The Fool,skill,trickery,extra\n")

	assert.True(t, results.Valid(), results.Errors)
	assert.Equal(t, []string{
		`column "Card" appears more than once; the first is used`,
		`line 2: "The Fool" has no Reversed text`,
		`line 3: card name "The Fool" already used on line 2`,
		"deck has 2 cards (a standard tarot deck has 78)",
	}, results.Warnings)
}

func TestMaxReversedWarningFollowsConfiguredBound(t *testing.T) {
	const twoCards = "Card,Code,Keyword,Reversed\nA,a,x,y\nB,b,x,y\n"

	v := NewValidator("")
	v.MaxReversed = 5
	results, err := v.ValidateReader(strings.NewReader(twoCards))
	require.NoError(t, err)
	assert.Contains(t, results.Warnings,
		"deck has fewer cards (2) than the reversal maximum (5); lower shuffle.max_reversed to read with it")

	v = NewValidator("")
	v.MaxReversed = 2
	results, err = v.ValidateReader(strings.NewReader(twoCards))
	require.NoError(t, err)
	for _, w := range results.Warnings {
		assert.NotContains(t, w, "reversal maximum")
	}
}
