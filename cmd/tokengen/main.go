// Command tokengen mints an access token for the registry using the server's
// configured secret. It stands in for an external identity provider in
// development: the token proves control of the identity it names.
//
//	tokengen -identity 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed
//
// Without -identity the configured owner identity is used. Server flags,
// environment and JSON config apply as for cmd/server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/idregistry/internal/flagx"
	"github.com/dmitrijs2005/idregistry/internal/server/auth"
	"github.com/dmitrijs2005/idregistry/internal/server/config"
)

func main() {
	var id string

	fs := flag.NewFlagSet("tokengen", flag.ExitOnError)
	fs.StringVar(&id, "identity", "", "identity to mint the token for (default: owner)")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-identity", "--identity"}))

	cfg := config.LoadConfig()
	if id == "" {
		id = cfg.OwnerIdentity
	}
	if id == "" {
		log.Fatal("no identity: pass -identity or configure OWNER_IDENTITY")
	}

	token, err := auth.GenerateToken(id, []byte(cfg.SecretKey), cfg.TokenValidityDuration)
	if err != nil {
		log.Fatalf("%v", err)
	}

	fmt.Println(token)
}
