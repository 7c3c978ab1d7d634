// snmp-agentd is a standalone SNMPv1 agent for testing and integrating
// management tooling against simulated devices.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
