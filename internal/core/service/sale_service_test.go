package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/gestao-empresarial/management-system/internal/core/domain"
	"github.com/gestao-empresarial/management-system/internal/core/ports"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func int64Ptr(v int64) *int64 { return &v }

func seededClients() *stubClientRepo {
	return newStubClientRepo(
		domain.Client{ID: 1, Name: "João Silva", SpecialInspectionValue: decimal.NewNullDecimal(dec("120.00"))},
		domain.Client{ID: 2, Name: "Ana Costa"},
	)
}

func TestSaleService_RegisterSale_ExplicitPrice(t *testing.T) {
	sales := &stubSaleRepo{}
	cache := &stubStatsCache{}
	svc := NewSaleService(sales, seededClients(), cache, decimal.Zero, zerolog.Nop())

	original := dec("150")
	sale, err := svc.RegisterSale(context.Background(), ports.RegisterSaleInput{
		ClientID:      int64Ptr(1),
		ServiceName:   "Vistoria",
		OriginalValue: &original,
		DiscountValue: dec("20"),
	})
	if err != nil {
		t.Fatalf("RegisterSale returned error: %v", err)
	}
	if !sale.FinalValue.Equal(dec("130")) {
		t.Fatalf("expected final 130, got %s", sale.FinalValue)
	}
	if sale.ClientName == nil || *sale.ClientName != "João Silva" {
		t.Fatalf("expected client name to be resolved, got %v", sale.ClientName)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected stats cache to be invalidated once, got %d", cache.invalidated)
	}
}

func TestSaleService_RegisterSale_ResolvesPrice(t *testing.T) {
	cases := []struct {
		name     string
		clientID *int64
		want     string
	}{
		{"client special value", int64Ptr(1), "120.00"},
		{"client without special value", int64Ptr(2), "150.00"},
		{"no client", nil, "150.00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sales := &stubSaleRepo{}
			svc := NewSaleService(sales, seededClients(), nil, dec("150.00"), zerolog.Nop())

			sale, err := svc.RegisterSale(context.Background(), ports.RegisterSaleInput{
				ClientID:    tc.clientID,
				ServiceName: "Vistoria",
			})
			if err != nil {
				t.Fatalf("RegisterSale returned error: %v", err)
			}
			if !sale.OriginalValue.Equal(dec(tc.want)) {
				t.Fatalf("expected original %s, got %s", tc.want, sale.OriginalValue)
			}
			if !sales.lastInput.OriginalValue.Equal(dec(tc.want)) {
				t.Fatalf("repository received %s", sales.lastInput.OriginalValue)
			}
		})
	}
}

func TestSaleService_RegisterSale_UnknownClient(t *testing.T) {
	sales := &stubSaleRepo{}
	cache := &stubStatsCache{}
	svc := NewSaleService(sales, seededClients(), cache, decimal.Zero, zerolog.Nop())

	_, err := svc.RegisterSale(context.Background(), ports.RegisterSaleInput{
		ClientID:    int64Ptr(99),
		ServiceName: "Vistoria",
	})
	if !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if len(sales.sales) != 0 {
		t.Fatalf("expected no sale stored")
	}
	if cache.invalidated != 0 {
		t.Fatalf("cache must not be touched on failure")
	}
}

func TestSaleService_RegisterSale_Validation(t *testing.T) {
	svc := NewSaleService(&stubSaleRepo{}, seededClients(), nil, decimal.Zero, zerolog.Nop())

	original := dec("50")
	_, err := svc.RegisterSale(context.Background(), ports.RegisterSaleInput{
		ServiceName:   "Vistoria",
		OriginalValue: &original,
		DiscountValue: dec("60"),
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestClientService_CreateClient(t *testing.T) {
	repo := newStubClientRepo()
	cache := &stubStatsCache{}
	svc := NewClientService(repo, cache, zerolog.Nop())

	special := dec("99.999")
	client, err := svc.CreateClient(context.Background(), ports.CreateClientInput{
		Name:                   "  Carla Souza ",
		SpecialInspectionValue: &special,
	})
	if err != nil {
		t.Fatalf("CreateClient returned error: %v", err)
	}
	if client.ID == 0 || client.Name != "Carla Souza" {
		t.Fatalf("unexpected client: %+v", client)
	}
	if !client.SpecialInspectionValue.Valid || !client.SpecialInspectionValue.Decimal.Equal(dec("100.00")) {
		t.Fatalf("expected special value rounded to 100.00, got %v", client.SpecialInspectionValue)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected stats cache to be invalidated")
	}

	if _, err := svc.CreateClient(context.Background(), ports.CreateClientInput{Name: "Carla Souza"}); !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
}

func TestClientService_CreateClient_Validation(t *testing.T) {
	svc := NewClientService(newStubClientRepo(), nil, zerolog.Nop())

	if _, err := svc.CreateClient(context.Background(), ports.CreateClientInput{Name: "   "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}

	negative := dec("-1")
	if _, err := svc.CreateClient(context.Background(), ports.CreateClientInput{Name: "X", SpecialInspectionValue: &negative}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for negative value, got %v", err)
	}
}

func TestClientService_ListClients_OrderedByName(t *testing.T) {
	svc := NewClientService(seededClients(), nil, zerolog.Nop())

	clients, err := svc.ListClients(context.Background())
	if err != nil {
		t.Fatalf("ListClients returned error: %v", err)
	}
	if len(clients) != 2 || clients[0].Name != "Ana Costa" || clients[1].Name != "João Silva" {
		t.Fatalf("unexpected order: %+v", clients)
	}
}
