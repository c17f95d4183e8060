package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/aretw0/switchyard/pkg/domain"
)

type runCall struct {
	Label   string
	Command string
}

// recordingRunner returns scripted exit codes in order and remembers every call.
type recordingRunner struct {
	mu    sync.Mutex
	codes []int
	calls []runCall
	err   error
}

func (r *recordingRunner) Run(_ context.Context, label, command string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, runCall{Label: label, Command: command})
	if r.err != nil {
		return -1, r.err
	}
	if len(r.codes) == 0 {
		return 0, nil
	}
	code := r.codes[0]
	r.codes = r.codes[1:]
	return code, nil
}

// scriptedPrompter answers from queues; an exhausted queue fails the call.
type scriptedPrompter struct {
	selects  []string
	confirms []bool
	secrets  []string

	confirmErr error
	secretErr  error

	titles    []string
	questions []string
}

func (p *scriptedPrompter) Select(_ context.Context, title string, options []string) (string, error) {
	p.titles = append(p.titles, title)
	if len(p.selects) == 0 {
		return "", fmt.Errorf("unexpected select %q with options %v", title, options)
	}
	choice := p.selects[0]
	p.selects = p.selects[1:]
	if choice == "" {
		return "", domain.ErrCancelled
	}
	return choice, nil
}

func (p *scriptedPrompter) Confirm(_ context.Context, question string, _ bool) (bool, error) {
	p.questions = append(p.questions, question)
	if p.confirmErr != nil {
		return false, p.confirmErr
	}
	if len(p.confirms) == 0 {
		return false, fmt.Errorf("unexpected confirm %q", question)
	}
	answer := p.confirms[0]
	p.confirms = p.confirms[1:]
	return answer, nil
}

func (p *scriptedPrompter) Secret(_ context.Context, prompt string) (string, error) {
	if p.secretErr != nil {
		return "", p.secretErr
	}
	if len(p.secrets) == 0 {
		return "", fmt.Errorf("unexpected secret %q", prompt)
	}
	s := p.secrets[0]
	p.secrets = p.secrets[1:]
	return s, nil
}

func sampleTree() *domain.Node {
	return domain.NewBranch(
		domain.Branch("build", domain.NewBranch(
			domain.Branch("clean", domain.NewLeaf("forge clean")),
			domain.Branch("full", domain.NewLeaf("forge clean && forge build")),
		)),
		domain.Branch("deploy", domain.NewBranch(
			domain.Branch("sepolia", domain.NewEscalatingLeaf("forge script D --rpc-url sepolia --broadcast")),
		)),
	)
}
