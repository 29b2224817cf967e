// cmd/chopper/main.go
package main

import (
	"chopper/internal/app"
	"chopper/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
