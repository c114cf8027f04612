// Command sheethtml renders one worksheet of an XLSX workbook as an HTML
// table.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{}
	if err := a.command().ExecuteContext(ctx); err != nil {
		if a.log != nil {
			a.log.WithError(err).Error("sheethtml failed.")
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
