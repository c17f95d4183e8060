package runtime

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/switchyard/internal/logging"
	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigator_FullReplayNeverPrompts(t *testing.T) {
	p := &scriptedPrompter{} // any Select call would fail
	nav := NewNavigator(p)

	leaf, path, err := nav.Traverse(context.Background(), sampleTree(), domain.Path{"build", "clean"})
	require.NoError(t, err)
	assert.Equal(t, "forge clean", leaf.Command)
	assert.Equal(t, domain.Path{"build", "clean"}, path)
	assert.Empty(t, p.titles)
}

func TestNavigator_PromptsWithoutCache(t *testing.T) {
	p := &scriptedPrompter{selects: []string{"build", "full"}}
	nav := NewNavigator(p)

	leaf, path, err := nav.Traverse(context.Background(), sampleTree(), nil)
	require.NoError(t, err)
	assert.Equal(t, "forge clean && forge build", leaf.Command)
	assert.Equal(t, domain.Path{"build", "full"}, path)
	assert.Equal(t, []string{"Choose:", "build Choose:"}, p.titles)
}

func TestNavigator_RootDivergenceFallsBackToPrompting(t *testing.T) {
	p := &scriptedPrompter{selects: []string{"build", "clean"}}
	nav := NewNavigator(p)

	leaf, path, err := nav.Traverse(context.Background(), sampleTree(), domain.Path{"compile", "clean"})
	require.NoError(t, err)
	assert.Equal(t, "forge clean", leaf.Command)
	assert.Equal(t, domain.Path{"build", "clean"}, path)
	// The stale cursor is dropped, so "clean" is prompted too.
	assert.Len(t, p.titles, 2)
}

func TestNavigator_PartialReplay(t *testing.T) {
	p := &scriptedPrompter{selects: []string{"full"}}
	nav := NewNavigator(p)

	_, path, err := nav.Traverse(context.Background(), sampleTree(), domain.Path{"build", "wipe"})
	require.NoError(t, err)
	assert.Equal(t, domain.Path{"build", "full"}, path)
	assert.Equal(t, []string{"build Choose:"}, p.titles)
}

func TestNavigator_CacheLongerThanTree(t *testing.T) {
	nav := NewNavigator(&scriptedPrompter{})

	_, path, err := nav.Traverse(context.Background(), sampleTree(), domain.Path{"build", "clean", "extra"})
	require.NoError(t, err)
	assert.Equal(t, domain.Path{"build", "clean"}, path)
}

func TestNavigator_CancelStopsTraversal(t *testing.T) {
	p := &scriptedPrompter{selects: []string{"build", ""}}
	nav := NewNavigator(p)

	leaf, path, err := nav.Traverse(context.Background(), sampleTree(), nil)
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.Nil(t, leaf)
	assert.Nil(t, path)
}

// blankPrompter answers every selection with an empty label and no error.
type blankPrompter struct {
	scriptedPrompter
}

func (blankPrompter) Select(context.Context, string, []string) (string, error) {
	return "", nil
}

func TestNavigator_EmptySelectionCancels(t *testing.T) {
	leaf, path, err := NewNavigator(&blankPrompter{}).Traverse(context.Background(), sampleTree(), domain.Path{"build"})
	assert.ErrorIs(t, err, domain.ErrCancelled)
	assert.False(t, errors.Is(err, domain.ErrInvalidPath))
	assert.Nil(t, leaf)
	assert.Nil(t, path)
}

func TestNavigator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewNavigator(&scriptedPrompter{}).Traverse(ctx, sampleTree(), nil)
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestNavigator_InvalidTree(t *testing.T) {
	tests := []struct {
		name string
		root *domain.Node
	}{
		{"Empty Root", domain.NewBranch()},
		{"Empty Nested Branch", domain.NewBranch(domain.Branch("build", domain.NewBranch()))},
		{"Nil Root", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &scriptedPrompter{selects: []string{"build"}}
			_, _, err := NewNavigator(p).Traverse(context.Background(), tt.root, nil)
			assert.ErrorIs(t, err, domain.ErrInvalidTree)
		})
	}
}

func TestNavigator_PrompterFailure(t *testing.T) {
	p := &scriptedPrompter{} // exhausted queue returns a plain error
	_, _, err := NewNavigator(p).Traverse(context.Background(), sampleTree(), nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrCancelled))
}

func TestNavigator_LogsNearestLabelOnDivergence(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)
	p := &scriptedPrompter{selects: []string{"build", "clean"}}

	_, _, err := NewNavigator(p, WithNavigatorLogger(logger)).
		Traverse(context.Background(), sampleTree(), domain.Path{"biuld"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "cached path diverged")
	assert.Contains(t, buf.String(), "nearest=build")
}
