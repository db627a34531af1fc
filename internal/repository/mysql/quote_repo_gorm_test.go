package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"sales-service/internal/domain"
)

func TestQuoteRepo_SaveCommitsWholeAggregate(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepository(db, testLogger())
	ctx := context.Background()

	draft := quoteDraft("jane@example.com",
		line("Desk", "500", 1, 1),
		line("Chair", "250", 4, 2),
	)
	draft.Payment = &domain.QuotePayment{Payment: domain.Payment{
		Method:     "card",
		Name:       "Jane Doe",
		Grandtotal: dec("1500"),
		Status:     domain.PaymentPending,
	}}

	id, err := repo.Save(ctx, draft)
	require.NoError(t, err)
	require.NotZero(t, id)
	assert.Equal(t, id, draft.Quote.ID)
	for _, it := range draft.Items {
		assert.Equal(t, id, it.QuoteID)
		assert.NotZero(t, it.ID)
	}

	agg, err := repo.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, agg)
	require.Len(t, agg.Items, 2)

	total := dec("0")
	for _, it := range agg.Items {
		assert.Equal(t, id, it.QuoteID)
		total = total.Add(it.RowTotal)
	}
	assert.True(t, total.Equal(dec("1500")), "row totals sum to %s", total)
	assert.True(t, agg.Grandtotal.Equal(dec("1500")))

	require.NotNil(t, agg.Payment)
	assert.Equal(t, id, agg.Payment.QuoteID)
	assert.Equal(t, domain.PaymentPending, agg.Payment.Status)
}

func TestQuoteRepo_SaveRollsBackOnChildFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, db *gorm.DB)
		draft func() *domain.QuoteDraft
	}{
		{
			name: "item references unknown product",
			draft: func() *domain.QuoteDraft {
				return quoteDraft("jane@example.com", line("Desk", "500", 1, 1), line("Ghost", "10", 1, 999))
			},
		},
		{
			name: "payment insert rejected",
			setup: func(t *testing.T, db *gorm.DB) {
				require.NoError(t, db.Exec(`CREATE TRIGGER reject_payment BEFORE INSERT ON quote_payment
					BEGIN SELECT RAISE(ABORT, 'payment rejected'); END`).Error)
			},
			draft: func() *domain.QuoteDraft {
				d := quoteDraft("jane@example.com", line("Desk", "500", 1, 1))
				d.Payment = &domain.QuotePayment{Payment: domain.Payment{
					Method: "card", Name: "Jane", Grandtotal: dec("500"), Status: domain.PaymentPending,
				}}
				return d
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			repo := NewQuoteRepository(db, testLogger())

			if tt.setup != nil {
				tt.setup(t, db)
			}

			id, err := repo.Save(context.Background(), tt.draft())
			require.Error(t, err)
			assert.Zero(t, id)
			assert.Zero(t, countRows(t, db, "quote"))
			assert.Zero(t, countRows(t, db, "quote_item"))
			assert.Zero(t, countRows(t, db, "quote_payment"))
		})
	}
}

func TestQuoteRepo_SaveWithoutChildren(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepository(db, testLogger())
	ctx := context.Background()

	id, err := repo.Save(ctx, quoteDraft("jane@example.com"))
	require.NoError(t, err)

	agg, err := repo.Load(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, agg)
	assert.Empty(t, agg.Items)
	assert.Nil(t, agg.Payment)
}

func TestQuoteRepo_Update(t *testing.T) {
	ctx := context.Background()
	newName := "Standing desk"
	newQty := 2
	paid := domain.PaymentPaid
	inactive := false

	type fixture struct {
		quoteA, quoteB uint64
		itemA, itemB   uint64
	}

	tests := []struct {
		name       string
		withPay    bool
		patch      func(f fixture) (uint64, domain.QuotePatch)
		wantOK     bool
		wantErr    error
		assertions func(t *testing.T, repo *quoteRepo, f fixture)
	}{
		{
			name:    "root items and payment",
			withPay: true,
			patch: func(f fixture) (uint64, domain.QuotePatch) {
				return f.quoteA, domain.QuotePatch{
					IsActive: &inactive,
					Items:    []domain.LinePatch{{ID: f.itemA, Name: &newName, Quantity: &newQty}},
					Payment:  &domain.PaymentPatch{Status: &paid},
				}
			},
			wantOK: true,
			assertions: func(t *testing.T, repo *quoteRepo, f fixture) {
				agg, err := repo.Load(ctx, f.quoteA)
				require.NoError(t, err)
				assert.False(t, agg.IsActive)
				require.Len(t, agg.Items, 1)
				assert.Equal(t, newName, agg.Items[0].Name)
				assert.Equal(t, newQty, agg.Items[0].Quantity)
				require.NotNil(t, agg.Payment)
				assert.Equal(t, domain.PaymentPaid, agg.Payment.Status)
			},
		},
		{
			name: "unknown quote writes nothing",
			patch: func(f fixture) (uint64, domain.QuotePatch) {
				return 999, domain.QuotePatch{IsActive: &inactive}
			},
			wantOK: false,
			assertions: func(t *testing.T, repo *quoteRepo, f fixture) {
				agg, err := repo.FindByID(ctx, f.quoteA)
				require.NoError(t, err)
				assert.True(t, agg.IsActive)
			},
		},
		{
			name: "item of another quote is not touched",
			patch: func(f fixture) (uint64, domain.QuotePatch) {
				return f.quoteA, domain.QuotePatch{
					IsActive: &inactive,
					Items:    []domain.LinePatch{{ID: f.itemB, Name: &newName}},
				}
			},
			wantOK: false,
			assertions: func(t *testing.T, repo *quoteRepo, f fixture) {
				item, err := repo.FindItemByID(ctx, f.itemB)
				require.NoError(t, err)
				assert.Equal(t, "Chair", item.Name)

				agg, err := repo.FindByID(ctx, f.quoteA)
				require.NoError(t, err)
				assert.True(t, agg.IsActive, "root change rolled back")
			},
		},
		{
			name: "payment patch without payment row",
			patch: func(f fixture) (uint64, domain.QuotePatch) {
				return f.quoteA, domain.QuotePatch{
					IsActive: &inactive,
					Payment:  &domain.PaymentPatch{Status: &paid},
				}
			},
			wantOK: false,
			assertions: func(t *testing.T, repo *quoteRepo, f fixture) {
				agg, err := repo.FindByID(ctx, f.quoteA)
				require.NoError(t, err)
				assert.True(t, agg.IsActive)
			},
		},
		{
			name: "item patch without id",
			patch: func(f fixture) (uint64, domain.QuotePatch) {
				return f.quoteA, domain.QuotePatch{
					IsActive: &inactive,
					Items:    []domain.LinePatch{{Name: &newName}},
				}
			},
			wantErr: ErrItemIDMissing,
			assertions: func(t *testing.T, repo *quoteRepo, f fixture) {
				agg, err := repo.FindByID(ctx, f.quoteA)
				require.NoError(t, err)
				assert.True(t, agg.IsActive)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := newTestDB(t)
			repo := NewQuoteRepository(db, testLogger()).(*quoteRepo)

			draftA := quoteDraft("a@example.com", line("Desk", "500", 1, 1))
			if tt.withPay {
				draftA.Payment = &domain.QuotePayment{Payment: domain.Payment{
					Method: "card", Name: "A", Grandtotal: dec("500"), Status: domain.PaymentPending,
				}}
			}
			draftB := quoteDraft("b@example.com", line("Chair", "250", 1, 2))
			quoteA, err := repo.Save(ctx, draftA)
			require.NoError(t, err)
			quoteB, err := repo.Save(ctx, draftB)
			require.NoError(t, err)

			f := fixture{quoteA: quoteA, quoteB: quoteB, itemA: draftA.Items[0].ID, itemB: draftB.Items[0].ID}
			id, patch := tt.patch(f)

			ok, err := repo.Update(ctx, id, patch)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.False(t, ok)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOK, ok)
			}
			tt.assertions(t, repo, f)
		})
	}
}

func TestQuoteRepo_DeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepository(db, testLogger())
	ctx := context.Background()

	draft := quoteDraft("jane@example.com", line("Desk", "500", 1, 1))
	draft.Payment = &domain.QuotePayment{Payment: domain.Payment{
		Method: "card", Name: "Jane", Grandtotal: dec("500"), Status: domain.PaymentPending,
	}}
	id, err := repo.Save(ctx, draft)
	require.NoError(t, err)

	n, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Zero(t, countRows(t, db, "quote_item"))
	assert.Zero(t, countRows(t, db, "quote_payment"))

	n, err = repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)

	agg, err := repo.Load(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, agg)
}

func TestQuoteRepo_ChildReadsNeedLoadedAggregate(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepository(db, testLogger())
	ctx := context.Background()

	_, err := repo.Items(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrAggregateNotLoaded)

	_, err = repo.Payment(ctx, &domain.QuoteAggregate{})
	assert.ErrorIs(t, err, domain.ErrAggregateNotLoaded)
}

func TestQuoteRepo_FindItemByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewQuoteRepository(db, testLogger())
	ctx := context.Background()

	draft := quoteDraft("jane@example.com", line("Desk", "500", 1, 1))
	_, err := repo.Save(ctx, draft)
	require.NoError(t, err)

	item, err := repo.FindItemByID(ctx, draft.Items[0].ID)
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "Desk", item.Name)

	item, err = repo.FindItemByID(ctx, 12345)
	require.NoError(t, err)
	assert.Nil(t, item)
}
