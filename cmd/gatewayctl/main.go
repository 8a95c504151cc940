// Command gatewayctl calls the AI gateway from the shell.
package main

import "github.com/Aleph-Alpha/gateway-client-go/cmd/gatewayctl/cmd"

func main() {
	cmd.Execute()
}
