package prometheus

import (
	"context"
	"time"

	"github.com/MrEthical07/cookieless"
)

// memBackend reports every key as missing.
type memBackend struct{}

func (memBackend) Get(context.Context, string) ([]byte, error) { return nil, cookieless.ErrNotFound }
func (memBackend) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}
func (memBackend) Del(context.Context, string) error { return nil }
