package entrypoint_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go_mdconv/internal/cli"
	"go_mdconv/internal/converr"
	"go_mdconv/internal/entrypoint"
)

func TestRunConvertsStdin(t *testing.T) {
	var out bytes.Buffer
	code, err := entrypoint.Run(context.Background(), []string{"go_mdconv"}, cli.Streams{
		In:  strings.NewReader("<p><strong>bold</strong></p>"),
		Out: &out,
		Err: &bytes.Buffer{},
	})
	if err != nil || code != 0 {
		t.Fatalf("code=%d err=%v", code, err)
	}
	if out.String() != "**bold**\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestRunUsageError(t *testing.T) {
	code, err := entrypoint.Run(context.Background(), []string{"go_mdconv", "--bogus"}, cli.Streams{
		In:  strings.NewReader(""),
		Out: &bytes.Buffer{},
		Err: &bytes.Buffer{},
	})
	if err == nil || code != 2 {
		t.Fatalf("code=%d err=%v", code, err)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"exit error", cli.ExitError{Code: 3, Err: errors.New("x")}, 3},
		{"config", fmt.Errorf("load: %w", converr.NewConfig("bullet_marker", "?", "must be one of - * +")), 2},
		{"parse", converr.NewParse("invalid utf-8", nil), 1},
		{"other", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := entrypoint.ExitCode(tt.err); got != tt.want {
				t.Fatalf("ExitCode=%d want %d", got, tt.want)
			}
		})
	}
}
