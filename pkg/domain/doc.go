/*
Package domain contains the core models of the switchyard dispatcher.

It defines the command tree, the paths that address it, the errors that shape
the dispatch contract and the lifecycle events emitted while a leaf runs. This
package is kept pure and free of external dependencies like I/O or
persistence.

# Key Entities

  - Node: A branch (labelled children in display order) or a leaf.
  - Leaf: A command, optionally marked for dry-run escalation.
  - Path: The labels from the root to a leaf; the unit of persistence.
  - ExitError: The non-zero status of a stage, propagated as the process status.
*/
package domain
