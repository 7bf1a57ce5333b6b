package publisher

import (
	"context"
	"fmt"
	"strings"
)

// StdoutPublisher prints the digest to stdout, for dry runs.
type StdoutPublisher struct{}

func NewStdoutPublisher() *StdoutPublisher {
	return &StdoutPublisher{}
}

func (p *StdoutPublisher) Publish(_ context.Context, text string) error {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Println(text)
	fmt.Println(strings.Repeat("=", 72))
	return nil
}
