// cmd/kreport/main.go
package main

import (
	"kreport/internal/app"
	"kreport/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
