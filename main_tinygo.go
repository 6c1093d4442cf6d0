//go:build tinygo

package main

import (
	"warren/app"
	"warren/hal"
)

func main() {
	app.Run(hal.New())
}
