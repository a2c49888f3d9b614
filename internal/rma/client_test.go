package rma

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/pkg/config"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
	"github.com/oakline/backoffice-backend/pkg/logger"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(config.ModificationConfig{
		BaseURL:        server.URL,
		RequestTimeout: 5 * time.Second,
	}, logger.New(logger.Options{ServiceName: "test", Output: io.Discard}))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewClientValidatesConfig(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})

	if _, err := NewClient(config.ModificationConfig{BaseURL: "http://localhost"}, nil); err == nil {
		t.Fatalf("expected error without logger")
	}
	if _, err := NewClient(config.ModificationConfig{}, logg); err == nil {
		t.Fatalf("expected error without base url")
	}
}

func TestClientCreateSwap(t *testing.T) {
	orderID := uuid.New()
	swapID := uuid.New()

	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if want := "/orders/" + orderID.String() + "/swaps"; r.URL.Path != want {
			t.Errorf("expected path %s, got %s", want, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %s", ct)
		}

		var req SwapRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.ReturnItems) != 1 {
			t.Errorf("expected 1 return item, got %d", len(req.ReturnItems))
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{"swap": map[string]any{"id": swapID.String()}})
	}))

	result, err := client.CreateSwap(context.Background(), orderID, &SwapRequest{
		ReturnItems:     []ReturnItemPayload{{ItemID: uuid.New(), Quantity: 1}},
		AdditionalItems: []AdditionalItemPayload{{VariantID: uuid.New(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create swap: %v", err)
	}
	if result.SwapID == nil || *result.SwapID != swapID {
		t.Fatalf("swap id not decoded: %+v", result.SwapID)
	}
}

func TestClientCreateReturn(t *testing.T) {
	returnID := uuid.New()
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"return": map[string]any{"id": returnID.String()}})
	}))

	result, err := client.CreateReturn(context.Background(), uuid.New(), &ReturnRequest{
		Items: []ReturnItemPayload{{ItemID: uuid.New(), Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create return: %v", err)
	}
	if result.ReturnID == nil || *result.ReturnID != returnID {
		t.Fatalf("return id not decoded: %+v", result.ReturnID)
	}
}

func TestClientCreateClaim(t *testing.T) {
	claimID := uuid.New()
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"claim": map[string]any{"id": claimID.String()}})
	}))

	result, err := client.CreateClaim(context.Background(), uuid.New(), &ClaimRequest{})
	if err != nil {
		t.Fatalf("create claim: %v", err)
	}
	if result.ClaimID == nil || *result.ClaimID != claimID {
		t.Fatalf("claim id not decoded: %+v", result.ClaimID)
	}
}

func TestClientSurfacesBackendMessageVerbatim(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"message": "cannot return more items than were purchased"})
	}))

	_, err := client.CreateReturn(context.Background(), uuid.New(), &ReturnRequest{})
	if err == nil {
		t.Fatalf("expected error")
	}

	typed := pkgerrors.As(err)
	if typed.Code() != pkgerrors.CodeSubmission {
		t.Fatalf("expected code %s, got %s", pkgerrors.CodeSubmission, typed.Code())
	}
	if typed.Message() != "cannot return more items than were purchased" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestClientFallbackMessageOnOpaqueBody(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>oops</html>"))
	}))

	_, err := client.CreateReturn(context.Background(), uuid.New(), &ReturnRequest{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if msg := pkgerrors.As(err).Message(); msg != "modification submission rejected" {
		t.Fatalf("unexpected message %q", msg)
	}
}
