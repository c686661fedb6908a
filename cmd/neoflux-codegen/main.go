package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/neoflux-dev/neoflux/cmd/neoflux-codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	arityKey  = "arity"
	outputKey = "output"
)

func main() {
	cmd := &cli.Command{
		Name:  "neoflux-codegen",
		Usage: "Generate combinator code for neoflux",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  arityKey,
				Usage: "Highest join arity to generate",
				Value: 8,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "Output path for the generated file",
				Value: "pkg/neoflux/join.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for join combinators started")
	defer func() {
		log.Printf("Codegen for join combinators finished in %v", time.Since(start))
	}()

	arity := cmd.Uint(arityKey)
	output := cmd.String(outputKey)

	contents := templates.JoinGen(int(arity))
	return os.WriteFile(output, []byte(contents), 0644)
}
