package main

import (
	"io"
	"os"
	"time"
)

// Environment is everything a command touches outside its arguments.
// Tests swap in buffers, a fixed clock and no .env file.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	DotEnv string // .env path read before MD2BLOG_* lookup; "" skips it
}

func DefaultEnv() *Environment {
	return &Environment{Now: time.Now, Stdout: os.Stdout, Stderr: os.Stderr, DotEnv: ".env"}
}
