package main

import (
	_ "embed"

	"github.com/DmitriSedov/rest-api-design-tutorial/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
