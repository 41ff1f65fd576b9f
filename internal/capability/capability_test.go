package capability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/svcgen/cli/internal/errors"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		want  []Capability
	}{
		{
			name: "defaults",
			want: []Capability{Database, Cache, Containers},
		},
		{
			name:  "no database",
			flags: Flags{DisableDatabase: true},
			want:  []Capability{Cache, Containers},
		},
		{
			name:  "no cache",
			flags: Flags{DisableCache: true},
			want:  []Capability{Database, Containers},
		},
		{
			name:  "background tasks",
			flags: Flags{EnableBackgroundTasks: true},
			want:  []Capability{Database, Cache, Containers, BackgroundTasks},
		},
		{
			name:  "everything off",
			flags: Flags{DisableDatabase: true, DisableCache: true, DisableContainers: true},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Resolve(tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, set.List())
		})
	}
}

func TestResolve_BackgroundTasksWithoutCache(t *testing.T) {
	flags := Flags{EnableBackgroundTasks: true, DisableCache: true}

	_, err := Resolve(flags)
	require.Error(t, err)
	assert.True(t, errors.Is(err, oerrors.ErrConfiguration))
	assert.Equal(t, oerrors.StageResolution, oerrors.StageOf(err))
	assert.Contains(t, err.Error(), "--enable-background-tasks")
	assert.Contains(t, err.Error(), "--disable-cache")

	_, again := Resolve(flags)
	assert.Equal(t, err.Error(), again.Error())
}

func TestSetContains(t *testing.T) {
	set := NewSet(Database, Containers)

	assert.True(t, set.Contains(nil))
	assert.True(t, set.Contains([]Capability{Database}))
	assert.True(t, set.Contains([]Capability{Database, Containers}))
	assert.False(t, set.Contains([]Capability{Cache}))
	assert.False(t, set.Contains([]Capability{Database, Cache}))
}

func TestSetString(t *testing.T) {
	assert.Equal(t, "none", NewSet().String())
	assert.Equal(t, "database, cache", NewSet(Cache, Database).String())
}

func TestParse(t *testing.T) {
	c, err := Parse(" Background_Tasks ")
	require.NoError(t, err)
	assert.Equal(t, BackgroundTasks, c)

	_, err = Parse("queue")
	assert.ErrorContains(t, err, "unknown capability")
}
