package nats

import (
	natsgo "github.com/nats-io/nats.go"
)

type closeFunc = func()

// Connector opens a NATS connection and returns the func that closes it.
type Connector func() (nc *natsgo.Conn, close closeFunc, err error)

// ConnectURL connects to natsURL, or to the NATS default URL when empty.
func ConnectURL(natsURL string) Connector {
	if natsURL == "" {
		natsURL = natsgo.DefaultURL
	}
	return func() (*natsgo.Conn, closeFunc, error) {
		nc, err := natsgo.Connect(
			natsURL,
			natsgo.Name("browserstore"),
			natsgo.MaxReconnects(3),
		)
		if err != nil {
			return nil, nil, err
		}
		return nc, func() { nc.Close() }, nil
	}
}
