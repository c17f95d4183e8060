package process

import (
	"github.com/kballard/go-shellquote"
)

// Injector turns a command into an invocation that carries injected secrets.
// It must preserve the command's semantics.
type Injector interface {
	Wrap(command string) string
}

// NopInjector returns commands unchanged.
type NopInjector struct{}

func (NopInjector) Wrap(command string) string { return command }

// InfisicalInjector runs the command through "infisical run", which exports
// the secrets of Env/Path into the child environment.
type InfisicalInjector struct {
	Env   string
	Path  string
	Shell string
}

func (i InfisicalInjector) Wrap(command string) string {
	args := []string{"infisical", "run", "--env=" + i.Env}
	if i.Path != "" {
		args = append(args, "--path="+i.Path)
	}
	args = append(args, "--", shellOrDefault(i.Shell), "-c", command)
	return shellquote.Join(args...)
}

// TemplateInjector prepends an arbitrary argument vector, e.g.
// ["doppler", "run", "--"] or ["op", "run", "--env-file=.env", "--"].
type TemplateInjector struct {
	Prefix []string
	Shell  string
}

func (i TemplateInjector) Wrap(command string) string {
	args := make([]string, 0, len(i.Prefix)+3)
	args = append(args, i.Prefix...)
	args = append(args, shellOrDefault(i.Shell), "-c", command)
	return shellquote.Join(args...)
}

func shellOrDefault(shell string) string {
	if shell == "" {
		return DefaultInnerShell
	}
	return shell
}
