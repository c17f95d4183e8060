package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/switchyard/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestPrintPath(t *testing.T) {
	var buf bytes.Buffer
	PrintPath(&buf, domain.Path{"build", "clean"})

	out := buf.String()
	assert.Contains(t, out, "Chosen path:\n")
	assert.Contains(t, out, " 1. build\n")
	assert.Contains(t, out, " 2. clean\n")
	assert.Equal(t, 2, strings.Count(out, strings.Repeat("-", 34)))
}

func TestStageBanner(t *testing.T) {
	var buf bytes.Buffer
	StageBanner(&buf)("dry-run", "forge script X")

	// A buffer is not a terminal, so no escape codes are emitted.
	assert.Equal(t, "\n=== DRY-RUN ===\nforge script X\n\n", buf.String())
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "v1.2.3")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestRenderTreeMarkdown(t *testing.T) {
	root := domain.NewBranch(
		domain.Branch("build", domain.NewBranch(
			domain.Branch("clean", domain.NewLeaf("forge clean")),
		)),
		domain.Branch("deploy", domain.NewEscalatingLeaf("forge script D --broadcast")),
	)

	md := RenderTreeMarkdown("build", root, domain.Path{"build", "clean"})
	assert.Contains(t, md, "# build\n")
	assert.Contains(t, md, "- **build**\n")
	assert.Contains(t, md, "  - clean ← last session: `forge clean`\n")
	assert.Contains(t, md, "- deploy _(dry-run first)_: `forge script D --broadcast`\n")
	assert.Contains(t, md, "2 commands, 1 require dry-run escalation.")
}
