package domain

import "strings"

// DefaultBroadcastFlag is the flag that turns a rehearsal into a real action.
const DefaultBroadcastFlag = "--broadcast"

// StripFlag removes every standalone occurrence of flag from cmd and
// collapses whitespace runs to single spaces.
// Tokens that merely contain flag (e.g. "--broadcast-url") are kept.
func StripFlag(cmd, flag string) string {
	fields := strings.Fields(cmd)
	kept := fields[:0]
	for _, f := range fields {
		if flag != "" && f == flag {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}

// Rehearsal returns the non-broadcasting form of the leaf command.
func (l *Leaf) Rehearsal(flag string) string {
	return StripFlag(l.Command, flag)
}
