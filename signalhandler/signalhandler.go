package signalhandler

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"imagemerger/logging"
)

// exit is replaced in tests
var exit = os.Exit

// SetupHandler turns SIGINT and SIGTERM into a short message on out and a
// clean exit. An interrupted merge never leaves a partial image under the
// output name, since the image is written to a temporary file and renamed
// into place. The returned function stops the handler.
func SetupHandler(out io.Writer) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			handle(sig, out)
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}

func handle(sig os.Signal, out io.Writer) {
	logging.LogWarning("Received %v, exiting", sig)
	logging.CloseLogger()
	fmt.Fprintf(out, "\nInterrupted (%v), exiting.\n", sig)

	code := 1
	if s, ok := sig.(syscall.Signal); ok {
		code = 128 + int(s)
	}
	exit(code)
}
