package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nehashinde/codsoft/codsoft/internal/fastcolor"
	"github.com/nehashinde/codsoft/currency"
)

var errUnsupported = errors.New("unsupported conversion")

var swapPair bool

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <amount> <from> <to>",
	Short: "Convert an amount between two currencies",
	Example: `  codsoft convert 100 USD INR
  codsoft convert 8350 USD INR --swap`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := cfg.Currency.Table()
		if err != nil {
			return err
		}
		pair := currency.Pair{From: currency.ParseCode(args[1]), To: currency.ParseCode(args[2])}
		if swapPair {
			pair = pair.Swap()
		}
		err = runConvert(cmd.OutOrStdout(), table, args[0], pair)
		if err != nil {
			// The message replaces cobra's error line; the status stays non-zero.
			cmd.SilenceErrors = true
			fastcolor.FgRed.WriteString(stringWriter(cmd.ErrOrStderr()), convertMessage(err)+newLine)
		}
		return err
	},
}

// ratesCmd represents the rates command
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the conversion rate between every pair of currencies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := cfg.Currency.Table()
		if err != nil {
			return err
		}
		buf := bufio.NewWriter(cmd.OutOrStdout())
		WriteRates(buf, table)
		return buf.Flush()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(ratesCmd)

	convertCmd.Flags().BoolVarP(&swapPair, "swap", "s", false, "Swap the source and target currencies.")
}

// convertMessage is the user facing text for a runConvert error.
func convertMessage(err error) string {
	switch {
	case errors.Is(err, errEmptyAmount):
		return "Please enter an amount."
	case errors.Is(err, errNegativeAmount):
		return "Amount cannot be negative!"
	case errors.Is(err, errInvalidAmount):
		return "Invalid amount!"
	case errors.Is(err, errUnsupported):
		return "Unsupported conversion."
	}
	return err.Error()
}

// runConvert parses amount, converts it across pair and writes the result.
func runConvert(w io.Writer, table *currency.Table, amount string, pair currency.Pair) error {
	value, err := parseAmount(amount)
	switch {
	case errors.Is(err, errEmptyAmount):
		return err
	case err != nil:
		return errInvalidAmount
	case value.IsNegative():
		return errNegativeAmount
	}

	result, ok := table.Convert(value, pair.From, pair.To)
	if !ok {
		logger.Debug("conversion refused", slog.String("pair", pair.String()))
		return fmt.Errorf("%w: %s", errUnsupported, pair)
	}
	logger.Debug("converted",
		slog.String("pair", pair.String()),
		slog.String("amount", value.String()),
		slog.String("result", result.String()),
	)

	_, err = fmt.Fprintf(w, "Result: %s %s\n", result.StringFixed(2), pair.To)
	return err
}
