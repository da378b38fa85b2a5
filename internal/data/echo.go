package data

import (
	"context"
	"errors"
	"io"
	"strings"
	"unicode"

	"antithetic/internal/biz"

	"github.com/yola1107/kratos/v2/log"
)

type echoRepo struct {
	data *Data
	log  *log.Helper
}

// NewEchoRepo .
func NewEchoRepo(data *Data, logger log.Logger) biz.EchoRepo {
	return &echoRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

// ReadValue skips leading whitespace and returns the following token unchanged.
func (r *echoRepo) ReadValue(ctx context.Context) (string, bool, error) {
	var sb strings.Builder
	for {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}
		c, _, err := r.data.in.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", false, err
		}
		if unicode.IsSpace(c) {
			if sb.Len() > 0 {
				break
			}
			continue
		}
		sb.WriteRune(c)
	}
	if sb.Len() == 0 {
		return "", false, nil
	}
	r.log.WithContext(ctx).Debugf("read trailing value %q", sb.String())
	return sb.String(), true, nil
}
