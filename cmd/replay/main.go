// Command replay feeds a scripted conversation through the engine against
// in-memory stores and prints the dialogue. Useful for trying out parser
// and policy changes without a database or a WhatsApp sandbox.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/olawale190/Apinlero-MVP-sub000/internal/config"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/domain"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/engine"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/parser"
	customerrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/customer"
	orderrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/order"
	productrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/product"
	sessionrepo "github.com/olawale190/Apinlero-MVP-sub000/internal/repository/session"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/resolver"
	"github.com/olawale190/Apinlero-MVP-sub000/internal/zones"
)

type script struct {
	TenantID    string   `json:"tenantId"`
	Phone       string   `json:"phone"`
	Name        string   `json:"name"`
	PriorOrders int      `json:"priorOrders"`
	Messages    []string `json:"messages"`
}

func main() {
	var (
		filePath string
		verbose  bool
	)
	flag.StringVar(&filePath, "file", "-", "Conversation script JSON (\"-\" for stdin)")
	flag.BoolVar(&verbose, "v", false, "log engine internals")
	flag.Parse()

	logger := log.New(io.Discard, "", 0)
	if verbose {
		logger = log.New(os.Stderr, "[replay] ", log.LstdFlags)
	}

	sc, err := readScript(filePath)
	if err != nil {
		log.Fatalf("read script: %v", err)
	}
	if sc.TenantID == "" {
		sc.TenantID = "demo"
	}
	if sc.Phone == "" {
		sc.Phone = "+447700900999"
	}

	cfg := config.FromEnv()
	eng := buildEngine(sc, cfg, logger)

	ctx := context.Background()
	for _, msg := range sc.Messages {
		fmt.Printf("> %s\n", msg)
		reply, err := eng.HandleTurn(ctx, sc.TenantID, sc.Phone, sc.Name, msg)
		if err != nil {
			fmt.Printf("! error: %v\n\n", err)
			continue
		}
		fmt.Printf("%s\n", reply.Text)
		if len(reply.QuickReplies) > 0 {
			fmt.Printf("[%s]\n", joinQuickReplies(reply.QuickReplies))
		}
		fmt.Println()
	}
}

func readScript(path string) (*script, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	var sc script
	if err := json.NewDecoder(r).Decode(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// buildEngine wires the engine over in-memory stores seeded with the demo
// grocery catalog.
func buildEngine(sc *script, cfg config.Config, logger *log.Logger) *engine.Engine {
	products := productrepo.NewMemory(demoCatalog(sc.TenantID))
	customers := customerrepo.NewMemory([]domain.Customer{{
		ID:              "replay-customer",
		TenantID:        sc.TenantID,
		Phone:           sc.Phone,
		Name:            sc.Name,
		CompletedOrders: sc.PriorOrders,
	}})
	orders := orderrepo.NewMemory()
	sessions := sessionrepo.NewMemory()

	zoneCalc := zones.NewDefault()
	res := resolver.New(nil, products, nil, logger)
	msgParser := parser.New(res, zoneCalc, logger)

	return engine.New(sessions, products, customers, orders, msgParser, zoneCalc, engine.Config{
		AutoConfirmMinOrders: cfg.AutoConfirmMinOrders,
		AutoConfirmMaxCents:  cfg.AutoConfirmMaxCents,
		AnonymousTTL:         cfg.SessionTTLAnonymous,
		TenantTTL:            cfg.SessionTTLTenant,
	}, logger)
}

func demoCatalog(tenantID string) []domain.Product {
	names := []struct {
		name  string
		cents int64
	}{
		{"Palm Oil", 1299},
		{"Egusi", 899},
		{"Garri", 650},
		{"Yam", 1100},
		{"Rice", 1450},
		{"Beans", 780},
		{"Plantain", 320},
		{"Stockfish", 2100},
		{"Scotch Bonnet", 250},
		{"Ogbono", 950},
		{"Ewedu", 400},
		{"Bitter Leaf", 450},
	}
	out := make([]domain.Product, 0, len(names))
	for i, n := range names {
		out = append(out, domain.Product{
			ID:         fmt.Sprintf("demo-%d", i+1),
			TenantID:   tenantID,
			Name:       n.name,
			PriceCents: n.cents,
			Currency:   "GBP",
			Active:     true,
		})
	}
	return out
}

func joinQuickReplies(qrs []string) string {
	out := ""
	for i, qr := range qrs {
		if i > 0 {
			out += " | "
		}
		out += qr
	}
	return out
}
