package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
)

// amountFlags collects optional decimal flags; an unset flag is a missing figure.
type amountFlags map[string]*string

func (f amountFlags) register(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		f[name] = cmd.Flags().String(name, "", "Total "+name+" (omit to derive it)")
	}
}

func (f amountFlags) get(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	d, err := decimal.NewFromString(*f[name])
	if err != nil {
		return nil, fmt.Errorf("%w: --%s %q", domain.ErrInvalidAmount, name, *f[name])
	}
	return &d, nil
}

func balanceSheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Balance sheet calculator",
	}

	amounts := amountFlags{}
	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the missing total from assets = liabilities + equity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			assets, err := amounts.get(cmd, "assets")
			if err != nil {
				return err
			}
			liabilities, err := amounts.get(cmd, "liabilities")
			if err != nil {
				return err
			}
			equity, err := amounts.get(cmd, "equity")
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			sheet := domain.NewBalanceSheet("", "", now, assets, liabilities, equity, now)
			if err := sheet.Derive(); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.BalanceSheetFromDomain(sheet))
		},
	}
	amounts.register(deriveCmd, "assets", "liabilities", "equity")
	cmd.AddCommand(deriveCmd)

	return cmd
}

func incomeStatementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income-statement",
		Short: "Income statement calculator",
	}

	amounts := amountFlags{}
	deriveCmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive the missing figure from net profit = revenue - expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			revenue, err := amounts.get(cmd, "revenue")
			if err != nil {
				return err
			}
			expenses, err := amounts.get(cmd, "expenses")
			if err != nil {
				return err
			}
			netProfit, err := amounts.get(cmd, "net-profit")
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			statement := domain.NewIncomeStatement("", "", now, now, revenue, expenses, netProfit, now)
			if err := statement.Derive(); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), dto.IncomeStatementFromDomain(statement))
		},
	}
	amounts.register(deriveCmd, "revenue", "expenses", "net-profit")
	cmd.AddCommand(deriveCmd)

	return cmd
}
