package calculator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripzy/internal/models"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(id, payer, amount string, participants ...string) models.Expense {
	return models.Expense{
		ID:           id,
		Title:        id,
		Amount:       dec(amount),
		Payer:        payer,
		Date:         models.NewDate(2023, 10, 15),
		Participants: participants,
	}
}

func sum(balances map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b)
	}
	return total
}

var groupRoster = models.Roster{"Alice", "Bob", "Charlie", models.SelfParticipant}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.Expense
		roster   models.Roster
		want     map[string]decimal.Decimal
	}{
		{
			name:     "no expenses leaves everyone settled",
			expenses: nil,
			roster:   groupRoster,
			want: map[string]decimal.Decimal{
				"Alice": decimal.Zero, "Bob": decimal.Zero, "Charlie": decimal.Zero, "You": decimal.Zero,
			},
		},
		{
			name: "dinner and taxi",
			expenses: []models.Expense{
				expense("dinner", "Alice", "120", "Alice", "Bob", "Charlie"),
				expense("taxi", "Bob", "45", "Alice", "Bob"),
			},
			roster: groupRoster,
			want: map[string]decimal.Decimal{
				"Alice":   dec("57.5"),
				"Bob":     dec("-17.5"),
				"Charlie": dec("-40"),
				"You":     decimal.Zero,
			},
		},
		{
			name: "self split is neutral",
			expenses: []models.Expense{
				expense("snacks", "Bob", "30", "Bob"),
			},
			roster: groupRoster,
			want: map[string]decimal.Decimal{
				"Alice": decimal.Zero, "Bob": decimal.Zero, "Charlie": decimal.Zero, "You": decimal.Zero,
			},
		},
		{
			name: "payer outside the split is owed everything",
			expenses: []models.Expense{
				expense("tickets", "You", "90", "Alice", "Bob", "Charlie"),
			},
			roster: groupRoster,
			want: map[string]decimal.Decimal{
				"Alice":   dec("-30"),
				"Bob":     dec("-30"),
				"Charlie": dec("-30"),
				"You":     dec("90"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBalances(tt.expenses, tt.roster)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, got, decimalEqual); diff != "" {
				t.Errorf("ComputeBalances() mismatch (-want +got):\n%s", diff)
			}
			assert.True(t, sum(got).IsZero(), "balances must sum to zero, got %s", sum(got))
		})
	}
}

func TestComputeBalancesConservesThirds(t *testing.T) {
	// 100 / 3 does not terminate; transfers must still cancel exactly.
	expenses := []models.Expense{
		expense("a", "Alice", "100", "Alice", "Bob", "Charlie"),
		expense("b", "Charlie", "10", "Alice", "Bob", "Charlie", "You"),
		expense("c", "You", "7", "Bob", "Charlie"),
	}

	got, err := ComputeBalances(expenses, groupRoster)
	require.NoError(t, err)
	assert.True(t, sum(got).IsZero(), "sum = %s", sum(got))
	assert.Len(t, got, len(groupRoster))
}

func TestComputeBalancesIsIdempotent(t *testing.T) {
	expenses := []models.Expense{
		expense("dinner", "Alice", "120", "Alice", "Bob", "Charlie"),
		expense("taxi", "Bob", "45", "Alice", "Bob"),
	}

	first, err := ComputeBalances(expenses, groupRoster)
	require.NoError(t, err)
	second, err := ComputeBalances(expenses, groupRoster)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second, decimalEqual); diff != "" {
		t.Errorf("repeated computation differs:\n%s", diff)
	}
}

func TestComputeBalancesErrors(t *testing.T) {
	t.Run("empty roster", func(t *testing.T) {
		_, err := ComputeBalances(nil, models.Roster{})
		var rosterErr *InvalidRosterError
		assert.ErrorAs(t, err, &rosterErr)
	})

	t.Run("unknown participant", func(t *testing.T) {
		_, err := ComputeBalances([]models.Expense{
			expense("boat", "Alice", "50", "Alice", "Zed"),
		}, groupRoster)
		var integrity *DataIntegrityError
		require.ErrorAs(t, err, &integrity)
		assert.Equal(t, "Zed", integrity.Participant)
		assert.Equal(t, "boat", integrity.ExpenseID)
	})

	t.Run("unknown payer", func(t *testing.T) {
		_, err := ComputeBalances([]models.Expense{
			expense("boat", "Zed", "50", "Alice"),
		}, groupRoster)
		var integrity *DataIntegrityError
		require.ErrorAs(t, err, &integrity)
		assert.Equal(t, "Zed", integrity.Participant)
	})

	t.Run("empty participants", func(t *testing.T) {
		_, err := ComputeBalances([]models.Expense{expense("boat", "Alice", "50")}, groupRoster)
		var integrity *DataIntegrityError
		assert.ErrorAs(t, err, &integrity)
	})
}

func TestSuggestSettlements(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"Alice":   dec("57.5"),
		"Bob":     dec("-17.5"),
		"Charlie": dec("-40"),
		"You":     decimal.Zero,
	}

	got := SuggestSettlements(balances)
	want := []Transfer{
		{From: "Charlie", To: "Alice", Amount: dec("40")},
		{From: "Bob", To: "Alice", Amount: dec("17.5")},
	}
	if diff := cmp.Diff(want, got, decimalEqual); diff != "" {
		t.Errorf("SuggestSettlements() mismatch (-want +got):\n%s", diff)
	}

	// Applying the transfers must settle everyone.
	for _, tr := range got {
		balances[tr.From] = balances[tr.From].Add(tr.Amount)
		balances[tr.To] = balances[tr.To].Sub(tr.Amount)
	}
	for name, b := range balances {
		assert.True(t, b.IsZero(), "%s still has %s", name, b)
	}
}

func TestSuggestSettlementsSettled(t *testing.T) {
	got := SuggestSettlements(map[string]decimal.Decimal{"You": decimal.Zero, "Alice": decimal.Zero})
	assert.Empty(t, got)
}

func TestSplitEvenly(t *testing.T) {
	splits := SplitEvenly(dec("45"), []string{"Alice", "Bob"})
	assert.True(t, splits["Alice"].Equal(dec("22.5")))
	assert.True(t, splits["Bob"].Equal(dec("22.5")))
	assert.True(t, Share(dec("10"), 0).IsZero())
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		balance string
		want    string
	}{
		{"57.5", "Owes you $57.50"},
		{"-17.5", "You owe $17.50"},
		{"0", "Settled up"},
		{"33.333333", "Owes you $33.33"},
	}
	for _, tt := range tests {
		t.Run(tt.balance, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(dec(tt.balance), DefaultCurrencySymbol))
		})
	}
}

func TestDescribeAllSkipsSelf(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"Alice":   dec("57.5"),
		"Bob":     dec("-17.5"),
		"Charlie": dec("-40"),
		"You":     decimal.Zero,
	}

	lines := DescribeAll(groupRoster, balances, "€")
	require.Len(t, lines, 3)
	assert.Equal(t, "Alice", lines[0].Participant)
	assert.Equal(t, "You owe €40.00", lines[2].Text)
}
