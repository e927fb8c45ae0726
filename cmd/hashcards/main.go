package main

import (
	"context"

	"github.com/kpauljoseph/hashcards/pkg/logger"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if log == nil {
			log = logger.New(logger.WithPrefix("[hashcards] "))
		}
		log.Fatal("%v", err)
	}
}
