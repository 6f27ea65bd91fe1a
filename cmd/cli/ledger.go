package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/iho/finledger/internal/adapter/http/dto"
)

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger checks against a running service",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check that journal debits equal journal credits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return checkConsistency(cmd.OutOrStdout(), opts)
		},
	})

	var accountID string
	reconcileCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Compare stored balances with replayed postings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if accountID != "" {
				return reconcileAccount(cmd.OutOrStdout(), opts, accountID)
			}
			return reconcileAll(cmd.OutOrStdout(), opts)
		},
	}
	reconcileCmd.Flags().StringVar(&accountID, "account", "", "Reconcile a single account by ID")
	cmd.AddCommand(reconcileCmd)

	return cmd
}

func checkConsistency(out io.Writer, opts *options) error {
	var report dto.ConsistencyResponse
	if err := getJSON(opts, "/api/v1/ledger/consistency", &report); err != nil {
		return err
	}

	if report.Consistent {
		fmt.Fprintln(out, "Consistency check PASSED")
	} else {
		fmt.Fprintln(out, "Consistency check FAILED")
	}
	fmt.Fprintf(out, "Total debits:  %s\n", report.TotalDebits.StringFixed(2))
	fmt.Fprintf(out, "Total credits: %s\n", report.TotalCredits.StringFixed(2))
	fmt.Fprintf(out, "Difference:    %s\n", report.Difference.StringFixed(2))

	if !report.Consistent {
		return errCheckFailed
	}
	return nil
}

func reconcileAll(out io.Writer, opts *options) error {
	var report dto.ReconciliationReportResponse
	if err := getJSON(opts, "/api/v1/ledger/reconciliation", &report); err != nil {
		return err
	}

	fmt.Fprintf(out, "Accounts checked: %d, reconciled: %d\n", report.TotalAccounts, report.ReconciledAccounts)
	for _, d := range report.Discrepancies {
		printDiscrepancy(out, d)
	}

	if len(report.Discrepancies) > 0 {
		return errCheckFailed
	}
	return nil
}

func reconcileAccount(out io.Writer, opts *options, accountID string) error {
	var result dto.ReconciliationResponse
	if err := getJSON(opts, "/api/v1/accounts/"+url.PathEscape(accountID)+"/reconciliation", &result); err != nil {
		return err
	}

	if result.IsReconciled {
		fmt.Fprintf(out, "Account %s reconciled at %s\n", result.AccountNumber, result.RecordedBalance.StringFixed(2))
		return nil
	}

	printDiscrepancy(out, &result)
	return errCheckFailed
}

func printDiscrepancy(out io.Writer, d *dto.ReconciliationResponse) {
	fmt.Fprintf(out, "DISCREPANCY %s (%s): recorded %s, calculated %s, difference %s\n",
		d.AccountNumber, d.AccountID,
		d.RecordedBalance.StringFixed(2), d.CalculatedBalance.StringFixed(2), d.Difference.StringFixed(2))
}

// getJSON decodes 200 and 409 bodies; the API reports failed checks as 409
// with the full report.
func getJSON(opts *options, path string, v any) error {
	client := &http.Client{Timeout: opts.timeout}
	resp, err := client.Get(opts.baseURL + path)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusConflict {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
