package cli

import (
	"strings"

	"github.com/dustin/go-humanize"
)

// byteSizeFlag accepts plain byte counts or sizes such as 2MiB and 500KB.
type byteSizeFlag struct {
	Value int64
}

func (b *byteSizeFlag) String() string {
	if b.Value == 0 {
		return "0"
	}
	return humanize.IBytes(uint64(b.Value))
}

func (b *byteSizeFlag) Set(v string) error {
	parsed, err := humanize.ParseBytes(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	b.Value = int64(parsed)
	return nil
}

func (b *byteSizeFlag) Type() string { return "size" }
