/*
Package tree loads, validates and inspects command trees.

A tree file is YAML, JSON or JSONC. Mapping keys are the menu labels and their
order is the display order. A string value is a command; a mapping with a
"cmd" key is a command that may require dry-run escalation:

	build:
	  clean: forge clean
	  full: forge clean && forge build
	deploy:
	  oracles:
	    cmd: forge script Deploy.s.sol --broadcast
	    dry_run_first: true
*/
package tree
