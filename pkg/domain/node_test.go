package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNode_Accessors(t *testing.T) {
	root := NewBranch(
		Branch("build", NewBranch(
			Branch("clean", NewLeaf("forge clean")),
			Branch("full", NewLeaf("forge clean && forge build")),
		)),
		Branch("deploy", NewEscalatingLeaf("forge script D --broadcast")),
	)

	assert.False(t, root.IsLeaf())
	assert.Equal(t, []string{"build", "deploy"}, root.Labels())

	build, ok := root.Child("build")
	assert.True(t, ok)
	assert.Equal(t, []string{"clean", "full"}, build.Labels())

	clean, ok := build.Child("clean")
	assert.True(t, ok)
	assert.True(t, clean.IsLeaf())
	assert.Equal(t, "forge clean", clean.Leaf.Command)
	assert.False(t, clean.Leaf.Escalate)

	_, ok = root.Child("missing")
	assert.False(t, ok)

	_, ok = clean.Child("anything")
	assert.False(t, ok, "leaves have no children")
	assert.Nil(t, clean.Labels())

	deploy, _ := root.Child("deploy")
	assert.True(t, deploy.Leaf.Escalate)
}

func TestPath(t *testing.T) {
	p := Path{"build", "clean"}
	assert.Equal(t, "build / clean", p.String())
	assert.Equal(t, "clean", p.Last("command"))
	assert.Equal(t, "command", Path{}.Last("command"))

	c := p.Clone()
	c[0] = "changed"
	assert.Equal(t, "build", p[0])

	assert.True(t, p.Equal(Path{"build", "clean"}))
	assert.False(t, p.Equal(Path{"build"}))
	assert.Equal(t, Path{"build", "with sizes"}, ParsePath(" build / with sizes /"))
	assert.Nil(t, ParsePath(""))
}

func TestIsEarlyExit(t *testing.T) {
	assert.True(t, IsEarlyExit(ErrCancelled))
	assert.True(t, IsEarlyExit(errors.Join(errors.New("x"), ErrAborted)))
	assert.False(t, IsEarlyExit(&ExitError{Stage: "dry-run", Code: 2}))
	assert.False(t, IsEarlyExit(nil))
}
