package logging

import (
	"context"
	"fmt"
	"strings"
)

// BadgerAdapter satisfies badger.Logger by forwarding printf-style calls to a
// Logger. Badger terminates most lines with '\n', which is trimmed.
type BadgerAdapter struct {
	L Logger
}

func (b BadgerAdapter) Errorf(format string, args ...any) {
	b.L.Error(context.Background(), b.msg(format, args))
}

func (b BadgerAdapter) Warningf(format string, args ...any) {
	b.L.Warn(context.Background(), b.msg(format, args))
}

func (b BadgerAdapter) Infof(format string, args ...any) {
	b.L.Info(context.Background(), b.msg(format, args))
}

func (b BadgerAdapter) Debugf(format string, args ...any) {
	b.L.Debug(context.Background(), b.msg(format, args))
}

func (b BadgerAdapter) msg(format string, args []any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
