package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created *Invoice
	deleted []int64
	status  Status
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*Invoice, error) {
	return &Invoice{ID: id}, nil
}

func (f *fakeRepo) List(ctx context.Context, filter ListFilter) ([]Invoice, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) Create(ctx context.Context, number string, input InvoiceInput) (*Invoice, error) {
	f.created = &Invoice{ID: 1, Number: number, ClientID: input.ClientID, Amount: input.Amount, Status: StatusDraft, IssuedAt: input.IssuedAt, DueAt: input.DueAt}
	return f.created, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, input InvoiceInput) (*Invoice, error) {
	return &Invoice{ID: id, ClientID: input.ClientID, Amount: input.Amount}, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, id int64, status Status) error {
	f.status = status
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeInvalidator struct {
	bumps int
}

func (f *fakeInvalidator) Invalidate(ctx context.Context) error {
	f.bumps++
	return nil
}

func validInput() InvoiceInput {
	return InvoiceInput{
		ClientID: 7,
		Amount:   150000,
		IssuedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		DueAt:    time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateGeneratesNumberAndBumpsCache(t *testing.T) {
	repo := &fakeRepo{}
	reports := &fakeInvalidator{}
	svc := NewService(repo, reports, nil)

	inv, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	assert.Equal(t, StatusDraft, inv.Status)
	assert.Regexp(t, `^INV-[0-9A-F]{8}$`, inv.Number)
	assert.Equal(t, 1, reports.bumps)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil, nil)
	ctx := context.Background()

	input := validInput()
	input.ClientID = 0
	_, err := svc.Create(ctx, input)
	assert.ErrorContains(t, err, "client ID")

	input = validInput()
	input.Amount = 0
	_, err = svc.Create(ctx, input)
	assert.ErrorContains(t, err, "amount")

	input = validInput()
	input.DueAt = input.IssuedAt.AddDate(0, -1, 0)
	_, err = svc.Create(ctx, input)
	assert.ErrorContains(t, err, "due date")
}

func TestTransitionValidatesStatus(t *testing.T) {
	repo := &fakeRepo{}
	reports := &fakeInvalidator{}
	svc := NewService(repo, reports, nil)

	err := svc.Transition(context.Background(), 3, Status("SHIPPED"))
	assert.ErrorContains(t, err, "unknown status")
	assert.Equal(t, 0, reports.bumps)

	require.NoError(t, svc.Transition(context.Background(), 3, StatusPaid))
	assert.Equal(t, StatusPaid, repo.status)
	assert.Equal(t, 1, reports.bumps)
}

func TestDeleteBumpsCache(t *testing.T) {
	repo := &fakeRepo{}
	reports := &fakeInvalidator{}
	svc := NewService(repo, reports, nil)

	require.NoError(t, svc.Delete(context.Background(), 9))
	assert.Equal(t, []int64{9}, repo.deleted)
	assert.Equal(t, 1, reports.bumps)
}
