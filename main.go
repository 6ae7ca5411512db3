package main

import "github.com/ColinKell02/SeniorDesign-GammaSpec/cmd"

func main() {
	cmd.Execute()
}
