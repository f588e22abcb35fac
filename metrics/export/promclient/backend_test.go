package promclient

import (
	"context"
	"time"

	"github.com/MrEthical07/cookieless"
)

type missBackend struct{}

func (missBackend) Get(context.Context, string) ([]byte, error)             { return nil, cookieless.ErrNotFound }
func (missBackend) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (missBackend) Del(context.Context, string) error                       { return nil }
