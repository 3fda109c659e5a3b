// Package cli implements the command-line interface for arctl, a front end
// for the Ansible engine.
//
// # Overview
//
// arctl dispatches playbooks and roles against an ansible-runner style
// private data directory, and bootstraps control and managed nodes through
// ansible-playbook. The engine itself stays external; every command delegates
// to the runner package.
//
// # Commands
//
// run - Execute a playbook or a role:
//
//	arctl run [PRIVATE_DATA_DIR] (--playbook NAME | --role NAME) [--tags a,b]
//
// Exactly one of --playbook and --role must be given. Giving neither exits
// with status 1, giving both exits with status 2. The directory defaults to
// the current working directory. The run's status and return code are
// printed, and --output writes the full result as json, yaml or table.
//
// init - Bootstrap a node:
//
//	arctl init [--ask-pass] [--ask-become-pass] {control|managed}
//
// A control node is configured with project/ansible_control.yml against the
// implicit localhost inventory. A managed node uses project/ansible_managed.yml
// against inventory/hosts. The prompt flags are forwarded as -k and -K.
//
// # Global Flags
//
//	--log-level     debug, info, warn or error (env ARCTL_LOG_LEVEL, LOG_LEVEL)
//	--executable    Engine binary (env ARCTL_EXECUTABLE, default ansible-playbook)
//	--metrics-file  Write Prometheus metrics to this file on exit
//	--help, -h      Show command help
//	--version, -v   Show version information
//
// # Exit Codes
//
//	0    command dispatched (or succeeded with --fail-on-error)
//	1    missing selector or unexpected failure
//	2    invalid usage
//	124  engine timed out
//	127  engine binary not found
//	130  interrupted
package cli
