/*
Copyright © 2025 OpsForge HQ <oss@opsforgehq.dev>
*/
package main

import "github.com/opsforgehq/prevet/cmd"

func main() {
	cmd.Execute()
}
