// AngelaMos | 2026
// main.go

package main

import "github.com/attorneywenn/Pragati-Backend-2025/cmd/api/cmd"

func main() {
	cmd.Execute()
}
