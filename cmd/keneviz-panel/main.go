// @title Keneviz VIP Panel API
// @version 1.0
// @description Session-authenticated lookup gateway with license key management
// @host localhost:5000
// @BasePath /
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"keneviz-panel-go/internal/bootstrap"
)

func main() {
	fmt.Printf("[%s] [INFO] [bootstrap] starting keneviz-panel...\n", time.Now().Format("2006-01-02 15:04:05.000"))
	if err := bootstrap.Run(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "keneviz-panel failed: %v\n", err)
		os.Exit(1)
	}
}
