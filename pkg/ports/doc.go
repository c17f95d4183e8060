/*
Package ports defines the driven ports (interfaces) of the switchyard dispatcher.

These interfaces decouple the navigation and escalation logic from the
terminal, the filesystem and the operating system, so each can be replaced
in tests or by an embedding application.

# Key Interfaces

  - SessionStore: Persists the last navigated path (file or memory).
  - Prompter: Selection, confirmation and masked secret entry.
  - ProcessRunner: Runs one command through the secret-injection wrapper.
*/
package ports
