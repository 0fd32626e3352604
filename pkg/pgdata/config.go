package pgdata

import (
	"fmt"
	"strconv"

	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/pgdata/pkg/log"
)

// Configured registers the pgdata-* flags and returns a Client that is
// filled in once lflag.Configure has parsed them. It panics if the flags
// describe an invalid client.
func Configured() *Client {
	c := &Client{}
	host := lflag.String("pgdata-host", "", "Base URL of the pgdata service (e.g. https://pgdata.example.com)")
	port := lflag.String("pgdata-port", "443", "Port of the pgdata service")
	username := lflag.String("pgdata-username", "", "Username to log in to pgdata with (requires pgdata-password)")
	password := lflag.String("pgdata-password", "", "Password to log in to pgdata with")
	token := lflag.String("pgdata-token", "", "Pre-issued pgdata API token (instead of username/password)")
	timeout := lflag.Duration("pgdata-timeout", defaultTimeout, "Timeout for each request to pgdata")

	lflag.Do(func() {
		if err := log.SyncLLogLevel(); err != nil {
			panic(err)
		}
		p, err := strconv.Atoi(*port)
		if err != nil {
			panic(fmt.Sprintf("invalid pgdata-port (%s): %v", *port, err))
		}
		creds, err := ResolveCredentials(*username, *password, *token)
		if err != nil {
			panic(fmt.Sprintf("pgdata credentials: %v", err))
		}
		if err := c.init(*host, p, creds, WithTimeout(*timeout)); err != nil {
			panic(fmt.Sprintf("pgdata client: %v", err))
		}
	})

	return c
}
