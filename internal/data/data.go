package data

import (
	"bufio"
	"io"
	"os"

	"antithetic/internal/conf"

	"github.com/google/wire"
	"github.com/yola1107/kratos/v2/log"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewEchoRepo)

// Stdin selects standard input as the input source.
const Stdin = "-"

// Data owns the input stream the trailing value is read from.
type Data struct {
	in *bufio.Reader
}

// NewData opens the configured input. An empty or "-" path reads standard input.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	var (
		r       io.Reader = os.Stdin
		closeIn           = func() error { return nil }
	)
	if c != nil && c.Input != "" && c.Input != Stdin {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, nil, err
		}
		r, closeIn = f, f.Close
	}
	cleanup := func() {
		helper.Info("closing the data resources")
		if err := closeIn(); err != nil {
			helper.Errorf("close input: %v", err)
		}
	}
	return NewDataFromReader(r), cleanup, nil
}

// NewDataFromReader wraps an already open stream.
func NewDataFromReader(r io.Reader) *Data {
	return &Data{in: bufio.NewReader(r)}
}
