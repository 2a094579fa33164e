package main

import "github.com/pslint/pslint/cmd/pslint"

func main() { pslint.Execute() }
