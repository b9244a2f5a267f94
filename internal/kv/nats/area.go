// Package nats provides a storage area kept in a NATS JetStream key/value
// bucket, so the persistent area can be shared by several processes.
package nats

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"browserstore/internal/kv"
)

const defaultTimeout = 5 * time.Second

// validKey matches keys JetStream accepts without escaping.
var validKey = regexp.MustCompile(`^[-/_=.a-zA-Z0-9]+$`)

type Config struct {
	Connect Connector
	Bucket  string
	// Timeout bounds every bucket operation. Zero means 5s.
	Timeout time.Duration
}

// Area is a kv.Area over one JetStream bucket.
type Area struct {
	kv      jetstream.KeyValue
	close   closeFunc
	timeout time.Duration
}

// Open connects and creates (or updates) the bucket.
func Open(cfg Config) (*Area, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("bucket is required")
	}
	connect := cfg.Connect
	if connect == nil {
		connect = ConnectURL("")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	nc, closeConn, err := connect()
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	js, err := jetstream.New(nc)
	if err != nil {
		closeConn()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	bucket, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:  cfg.Bucket,
		Storage: jetstream.FileStorage,
		History: 1,
	})
	if err != nil {
		closeConn()
		return nil, fmt.Errorf("bucket %s: %w", cfg.Bucket, err)
	}
	return &Area{kv: bucket, close: closeConn, timeout: timeout}, nil
}

// Close closes the connection.
func (a *Area) Close() error {
	if a.close != nil {
		a.close()
	}
	return nil
}

func (a *Area) GetItem(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	entry, err := a.kv.Get(ctx, subjectKey(key))
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s: %w", key, err)
	}
	return string(entry.Value()), true, nil
}

func (a *Area) SetItem(key, text string) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if _, err := a.kv.Put(ctx, subjectKey(key), []byte(text)); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (a *Area) RemoveItem(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.kv.Delete(ctx, subjectKey(key)); err != nil && !errors.Is(err, jetstream.ErrKeyNotFound) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// subjectKey maps an arbitrary storage key to a bucket key. Keys JetStream
// accepts are kept readable under "k."; anything else is hex-encoded under
// "h.", so the two forms never collide.
func subjectKey(key string) string {
	if validKey.MatchString(key) && !strings.HasPrefix(key, ".") && !strings.HasSuffix(key, ".") && !strings.Contains(key, "..") {
		return "k." + key
	}
	return "h." + hex.EncodeToString([]byte(key))
}

var _ kv.Area = (*Area)(nil)
