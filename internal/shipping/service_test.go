package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/oakline/backoffice-backend/pkg/db/models"
	pkgerrors "github.com/oakline/backoffice-backend/pkg/errors"
)

type stubRepo struct {
	options []models.ShippingOption
	err     error
}

func (s *stubRepo) ListReturnOptions(ctx context.Context, regionID uuid.UUID) ([]models.ShippingOption, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.options, nil
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatalf("expected error without repository")
	}
}

func TestReturnOptionsMapsRecords(t *testing.T) {
	optionID := uuid.New()
	svc, err := NewService(&stubRepo{options: []models.ShippingOption{{
		ID:          optionID,
		Name:        "Standard Return",
		AmountCents: 250,
		IsReturn:    true,
	}}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	options, err := svc.ReturnOptions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("return options: %v", err)
	}
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
	if options[0].ID != optionID {
		t.Fatalf("wrong option id: %s", options[0].ID)
	}
	if options[0].Name != "Standard Return" {
		t.Fatalf("unexpected name %q", options[0].Name)
	}
	if options[0].AmountCents != 250 {
		t.Fatalf("expected amount 250, got %d", options[0].AmountCents)
	}
}

func TestReturnOptionsWrapsRepoError(t *testing.T) {
	svc, err := NewService(&stubRepo{err: errors.New("connection refused")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.ReturnOptions(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("expected error")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeDependency {
		t.Fatalf("expected code %s, got %s", pkgerrors.CodeDependency, code)
	}
}

func TestReturnOptionsEmpty(t *testing.T) {
	svc, err := NewService(&stubRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	options, err := svc.ReturnOptions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("return options: %v", err)
	}
	if len(options) != 0 {
		t.Fatalf("expected no options, got %d", len(options))
	}
}
