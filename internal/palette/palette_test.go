package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/stuttgart-things/banner/internal/errors"
)

func TestLookupBuiltin(t *testing.T) {
	table := NewTable()

	stops, err := table.Lookup("atlas")
	require.NoError(t, err)
	assert.Equal(t, []string{"#feac5e", "#c779d0", "#4bc0c8"}, stops.Hex())
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	stops, err := NewTable().Lookup("  NEON ")
	require.NoError(t, err)
	assert.Len(t, stops, 2)
}

func TestLookupUnknown(t *testing.T) {
	_, err := NewTable().Lookup("does-not-exist")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPalette)
	assert.Contains(t, err.Error(), "not found")
}

func TestLookupTwiceReturnsEqualIndependentCopies(t *testing.T) {
	table := NewTable()

	first, err := table.Lookup("instagram")
	require.NoError(t, err)
	second, err := table.Lookup("instagram")
	require.NoError(t, err)

	assert.Equal(t, first, second)

	first[0] = first[2]
	third, err := table.Lookup("instagram")
	require.NoError(t, err)
	assert.Equal(t, second, third)
	assert.NotEqual(t, first, third)
}

func TestResolve(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name    string
		palette string
		colors  []string
		want    []string
		wantErr bool
	}{
		{"explicit colors win", "atlas", []string{"#000", "fff"}, []string{"#000000", "#ffffff"}, false},
		{"named colors", "", []string{"red", "blue"}, []string{"#ff0000", "#0000ff"}, false},
		{"default palette", "", nil, []string{"#ff00ff", "#00ffff"}, false},
		{"empty explicit list", "", []string{}, nil, true},
		{"malformed color", "", []string{"#zzzzzz"}, nil, true},
		{"unknown name", "nope", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stops, err := table.Resolve(tt.palette, tt.colors)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrInvalidPalette)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, stops.Hex())
		})
	}
}

func TestAddValidatesColors(t *testing.T) {
	table := NewTable()

	require.NoError(t, table.Add("Ocean", []string{"#003973", "#e5e5be"}))
	assert.True(t, table.Has("ocean"))
	assert.Contains(t, table.Names(), "ocean")

	err := table.Add("broken", []string{"not-a-color"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPalette)
	assert.False(t, table.Has("broken"))

	assert.ErrorIs(t, table.Add(" ", []string{"#fff"}), apperrors.ErrInvalidPalette)
}

func TestCloneDoesNotAlias(t *testing.T) {
	stops, err := ParseColors([]string{"#ff0000", "#00ff00"})
	require.NoError(t, err)

	clone := stops.Clone()
	clone[0] = clone[1]
	assert.Equal(t, "#ff0000", stops[0].Hex())
}

func TestNamesSorted(t *testing.T) {
	names := NewTable().Names()
	assert.IsNonDecreasing(t, names)
	assert.Contains(t, names, DefaultName)
}
