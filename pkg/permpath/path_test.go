package permpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c-massie/PermissionsSystem-sub001/pkg/permpath"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		input        string
		wantKey      string
		wantSegments []string
		wantArg      string
		wantHasArg   bool
		wantErr      bool
	}{
		{
			name:         "single segment",
			input:        "first",
			wantKey:      "first",
			wantSegments: []string{"first"},
		},
		{
			name:         "multiple segments",
			input:        "first.second.third",
			wantKey:      "first.second.third",
			wantSegments: []string{"first", "second", "third"},
		},
		{
			name:         "with argument",
			input:        "first.second:someArg",
			wantKey:      "first.second",
			wantSegments: []string{"first", "second"},
			wantArg:      "someArg",
			wantHasArg:   true,
		},
		{
			name:         "argument containing delimiters",
			input:        "first.second:some:arg.with.dots",
			wantKey:      "first.second",
			wantSegments: []string{"first", "second"},
			wantArg:      "some:arg.with.dots",
			wantHasArg:   true,
		},
		{
			name:         "trailing argument delimiter",
			input:        "first.second:",
			wantKey:      "first.second",
			wantSegments: []string{"first", "second"},
			wantArg:      "",
			wantHasArg:   true,
		},
		{
			name:         "surrounding whitespace",
			input:        "  first.second  ",
			wantKey:      "first.second",
			wantSegments: []string{"first", "second"},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "leading dot",
			input:   ".first",
			wantErr: true,
		},
		{
			name:    "trailing dot",
			input:   "first.",
			wantErr: true,
		},
		{
			name:    "doubled dot",
			input:   "first..second",
			wantErr: true,
		},
		{
			name:    "argument only",
			input:   ":someArg",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := permpath.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, permpath.ErrInvalidPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, p.Key())
			assert.Equal(t, tt.wantSegments, p.Segments())
			arg, hasArg := p.Argument()
			assert.Equal(t, tt.wantHasArg, hasArg)
			assert.Equal(t, tt.wantArg, arg)
		})
	}
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	t.Run("valid path", func(t *testing.T) {
		t.Parallel()
		p := permpath.MustParse("first.second")
		assert.Equal(t, "first.second", p.Key())
	})

	t.Run("panics on malformed path", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { permpath.MustParse("first..second") })
	})
}

func TestPathCovers(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		path     string
		other    string
		expected bool
	}{
		{
			name:     "exact match",
			path:     "first.second",
			other:    "first.second",
			expected: true,
		},
		{
			name:     "ancestor covers descendant",
			path:     "first.second",
			other:    "first.second.third",
			expected: true,
		},
		{
			name:     "root covers deep descendant",
			path:     "first",
			other:    "first.second.third.fourth",
			expected: true,
		},
		{
			name:     "descendant does not cover ancestor",
			path:     "first.second.third",
			other:    "first.second",
			expected: false,
		},
		{
			name:     "sibling does not cover",
			path:     "first.second",
			other:    "first.other",
			expected: false,
		},
		{
			name:     "segment prefix is not a path prefix",
			path:     "first.sec",
			other:    "first.second",
			expected: false,
		},
		{
			name:     "case sensitive",
			path:     "First",
			other:    "first.second",
			expected: false,
		},
		{
			name:     "argument is ignored",
			path:     "first.second:someArg",
			other:    "first.second.third",
			expected: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := permpath.MustParse(tt.path)
			other := permpath.MustParse(tt.other)
			assert.Equal(t, tt.expected, p.Covers(other))
		})
	}
}

func TestPathSpecificity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, permpath.MustParse("first").Specificity())
	assert.Equal(t, 3, permpath.MustParse("first.second.third").Specificity())
	assert.Equal(t, 2, permpath.MustParse("first.second:someArg").Specificity())
}

func TestPathString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain path", input: "first.second"},
		{name: "path with argument", input: "first.second:someArg"},
		{name: "path with empty argument", input: "first.second:"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := permpath.MustParse(tt.input)
			assert.Equal(t, tt.input, p.String())

			// String output must round-trip through Parse.
			again, err := permpath.Parse(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, again)
		})
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	shallow := permpath.MustParse("first.second")
	deep := permpath.MustParse("first.second.third")
	sibling := permpath.MustParse("first.other")

	assert.Negative(t, permpath.Compare(shallow, deep))
	assert.Positive(t, permpath.Compare(deep, shallow))
	assert.Zero(t, permpath.Compare(shallow, shallow))

	// Equal specificity falls back to key ordering.
	assert.Positive(t, permpath.Compare(shallow, sibling))

	// Arguments do not affect ordering.
	withArg := permpath.MustParse("first.second:someArg")
	assert.Zero(t, permpath.Compare(shallow, withArg))
}

func TestPathIsZero(t *testing.T) {
	t.Parallel()

	var zero permpath.Path
	assert.True(t, zero.IsZero())
	assert.False(t, permpath.MustParse("first").IsZero())
}
