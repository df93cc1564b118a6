// clobctl is a small operator tool: it signs a wallet attestation, derives
// API credentials or prices a hypothetical market order against the live
// book, without running the full gateway.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/GoPolymarket/go-clob-client/pkg/auth"
	"github.com/GoPolymarket/go-clob-client/pkg/client"
	"github.com/GoPolymarket/go-clob-client/pkg/clobtypes"
	"github.com/GoPolymarket/go-clob-client/pkg/headers"
	"github.com/GoPolymarket/go-clob-client/pkg/orderbuilder"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load()

	var (
		chainID = flag.Int64("chain", 137, "chain id (137 or 80002)")
		baseURL = flag.String("url", client.DefaultBaseURL, "CLOB base url")
	)
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
	}

	pk := os.Getenv("CLOBGATE_POLYMARKET_PRIVATE_KEY")
	chain := clobtypes.Chain(*chainID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch flag.Arg(0) {
	case "attest":
		signer := mustSigner(pk, chain)
		hdrs, err := headers.CreateL1Headers(signer, nil, nil)
		if err != nil {
			log.Fatalf("attestation failed: %v", err)
		}
		printJSON(hdrs)

	case "derive-creds":
		c := client.NewClient(*baseURL, chain, client.WithPrivateKey(pk))
		creds, err := c.CreateOrDeriveApiKey(ctx, nil)
		if err != nil {
			log.Fatalf("credential derivation failed: %v", err)
		}
		printJSON(creds)

	case "price":
		if flag.NArg() < 4 {
			log.Fatal("usage: clobctl price <token_id> <BUY|SELL> <amount>")
		}
		tokenID := flag.Arg(1)
		side := clobtypes.Side(flag.Arg(2))
		amount, err := decimal.NewFromString(flag.Arg(3))
		if err != nil {
			log.Fatalf("bad amount: %v", err)
		}

		c := client.NewClient(*baseURL, chain)
		book, err := c.GetOrderBook(ctx, tokenID)
		if err != nil {
			log.Fatalf("book fetch failed: %v", err)
		}

		var price decimal.Decimal
		if side == clobtypes.SideBuy {
			price, err = orderbuilder.CalculateBuyMarketPrice(book.Asks, amount, clobtypes.OrderTypeFOK)
		} else {
			price, err = orderbuilder.CalculateSellMarketPrice(book.Bids, amount, clobtypes.OrderTypeFOK)
		}
		if err != nil {
			log.Fatalf("no price: %v", err)
		}
		fmt.Println(price.String())

	default:
		usage()
	}
}

func mustSigner(pk string, chain clobtypes.Chain) *auth.Signer {
	if pk == "" {
		log.Fatal("CLOBGATE_POLYMARKET_PRIVATE_KEY is not set")
	}
	signer, err := auth.NewSigner(pk, chain)
	if err != nil {
		log.Fatalf("bad private key: %v", err)
	}
	return signer
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(out))
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: clobctl [flags] <attest|derive-creds|price>")
	flag.PrintDefaults()
	os.Exit(1)
}
