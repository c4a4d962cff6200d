package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/mmynk/tripzy/internal/calculator"
	"github.com/mmynk/tripzy/internal/ledger"
	"github.com/mmynk/tripzy/internal/models"
)

// tripFile is the input of the balances command. "You" is added to the
// roster automatically.
type tripFile struct {
	Members  []string `json:"members"`
	Expenses []struct {
		Title        string          `json:"title"`
		Amount       decimal.Decimal `json:"amount"`
		Payer        string          `json:"payer"`
		Date         string          `json:"date,omitempty"`
		Participants []string        `json:"participants"`
	} `json:"expenses"`
}

func balancesCmd(c *cli) *cobra.Command {
	var (
		file string
		demo bool
	)

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Compute balances and settlements for a trip file",
		Example: `  tripzy balances --demo
  tripzy balances --file trip.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				l   *ledger.Ledger
				err error
			)
			switch {
			case demo:
				l = ledger.Demo()
			case file != "":
				l, err = loadTripFile(file)
				if err != nil {
					return err
				}
			default:
				return errors.New("either --file or --demo is required")
			}
			return printBalances(cmd.OutOrStdout(), l, c.cfg.CurrencySymbol)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON trip file with members and expenses")
	cmd.Flags().BoolVar(&demo, "demo", false, "use the built-in sample trip")
	cmd.MarkFlagsMutuallyExclusive("file", "demo")
	return cmd
}

func loadTripFile(path string) (*ledger.Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trip file: %w", err)
	}
	var tf tripFile
	if err := json.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse trip file: %w", err)
	}

	roster, err := models.NewRoster(tf.Members...)
	if err != nil {
		return nil, err
	}
	l, err := ledger.New(roster, nil)
	if err != nil {
		return nil, err
	}

	for i, e := range tf.Expenses {
		var date models.Date
		if e.Date != "" {
			if date, err = models.ParseDate(e.Date); err != nil {
				return nil, fmt.Errorf("expense %d: %w", i+1, err)
			}
		}
		_, err := l.AddExpense(models.ExpenseInput{
			Title:        e.Title,
			Amount:       e.Amount,
			Payer:        e.Payer,
			Date:         date,
			Participants: e.Participants,
		})
		if err != nil {
			return nil, fmt.Errorf("expense %d (%s): %w", i+1, e.Title, err)
		}
	}
	return l, nil
}

func printBalances(out io.Writer, l *ledger.Ledger, symbol string) error {
	balances := l.Balances()

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PARTICIPANT\tBALANCE\t")
	for _, member := range l.Roster() {
		amount := balances[member]
		text := ""
		if member != models.SelfParticipant {
			text = calculator.Describe(amount, symbol)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", member, amount.StringFixed(2), text)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	transfers := calculator.SuggestSettlements(balances)
	if len(transfers) == 0 {
		_, err := fmt.Fprintln(out, "\nEveryone is settled up.")
		return err
	}
	fmt.Fprintln(out, "\nSettlements:")
	for _, t := range transfers {
		fmt.Fprintf(out, "  %s -> %s: %s%s\n", t.From, t.To, symbol, t.Amount.StringFixed(2))
	}
	return nil
}
