/*
Package switchyard is an interactive command dispatcher for operational
workflows.

A command tree maps labels to either nested menus or shell commands. The
dispatcher walks the tree with the user, remembers the chosen path so it can
be replayed next time, and runs the command. Commands marked for escalation
run first as a dry-run with the broadcast flag removed; the real run only
happens after the user confirms and enters the passcode.

# Usage

	root, err := tree.Load("deploy.yaml")
	if err != nil {
		log.Fatal(err)
	}

	d, err := switchyard.New(root,
		switchyard.WithStore(file.ForTree(".", "deploy")),
		switchyard.WithEnvironment("sepolia"),
	)
	if err != nil {
		log.Fatal(err)
	}

	if err := d.Run(context.Background()); err != nil && !domain.IsEarlyExit(err) {
		log.Fatal(err)
	}

# Tree format

Trees are YAML, JSON or JSONC documents. A string value is a command; a
mapping with a "cmd" key is a command with options; any other mapping is a
menu whose keys are shown in document order.

	build:
	  clean: forge clean
	  full: forge clean && forge build
	deploy:
	  sepolia:
	    cmd: forge script Deploy --rpc-url sepolia --broadcast
	    dry_run_first: true
*/
package switchyard
