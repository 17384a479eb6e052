package service

import (
	"bytes"
	"io"
	"os"
)

// captureOutput returns what f prints to os.Stdout.
func captureOutput(f func()) string {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	w.Close()
	os.Stdout = oldStdout
	return <-done
}
