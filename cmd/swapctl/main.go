package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// quoteRequest mirrors the service's /swap/quote payload.
type quoteRequest struct {
	FromAsset     string `json:"from_asset"`
	ToAsset       string `json:"to_asset"`
	FromWalletRef string `json:"from_wallet_ref"`
	ToWalletRef   string `json:"to_wallet_ref"`
	NativeAmount  string `json:"native_amount"`
	Direction     string `json:"direction,omitempty"`
}

type quoteResponse struct {
	OrderID            string    `json:"order_id"`
	Provider           string    `json:"provider"`
	FromNativeAmount   string    `json:"from_native_amount"`
	ToNativeAmount     string    `json:"to_native_amount"`
	DestinationAddress string    `json:"destination_address"`
	TxID               string    `json:"tx_id"`
	IsEstimate         bool      `json:"is_estimate"`
	ExpiresAt          time.Time `json:"expires_at"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Limit string `json:"limit"`
}

var (
	fromAsset  string
	toAsset    string
	fromWallet string
	toWallet   string
	amount     string
	direction  string
)

var rootCmd = &cobra.Command{
	Use:   "swapctl",
	Short: "A CLI for the swapgate swap-quote service",
	Long: `swapctl drives a running swapgate instance from the terminal.

Amounts are given in native smallest units of the quoted asset
(satoshi for BTC, litoshi for LTC, and so on).

Examples:
  swapctl quote --from BTC --to LTC --from-wallet w1 --to-wallet w2 --amount 150000
  swapctl quote --from BTC --to LTC --from-wallet w1 --to-wallet w2 --amount 2894532784 --direction to`,
	Version: "1.0.0",
}

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Create and fund a fixed-rate swap quote",
	Long: `Request a fixed-rate quote from the service, which creates the provider
order and funds its deposit address from the source wallet in one step.`,
	Run: runQuote,
}

func init() {
	viper.SetEnvPrefix("SWAPGATE")
	viper.AutomaticEnv()
	viper.SetDefault("server", "http://localhost:8080")

	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("server", "", "Base URL of the swapgate service")
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))

	quoteCmd.Flags().StringVar(&fromAsset, "from", "", "Source asset ticker (REQUIRED)")
	quoteCmd.Flags().StringVar(&toAsset, "to", "", "Destination asset ticker (REQUIRED)")
	quoteCmd.Flags().StringVar(&fromWallet, "from-wallet", "", "Source wallet reference (REQUIRED)")
	quoteCmd.Flags().StringVar(&toWallet, "to-wallet", "", "Destination wallet reference (REQUIRED)")
	quoteCmd.Flags().StringVar(&amount, "amount", "", "Amount in native smallest units (REQUIRED)")
	quoteCmd.Flags().StringVar(&direction, "direction", "from", `Which side the amount fixes: "from" or "to"`)
	_ = quoteCmd.MarkFlagRequired("from")
	_ = quoteCmd.MarkFlagRequired("to")
	_ = quoteCmd.MarkFlagRequired("from-wallet")
	_ = quoteCmd.MarkFlagRequired("to-wallet")
	_ = quoteCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(quoteCmd)
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func runQuote(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	verbose, _ := cmd.Flags().GetBool("verbose")
	server := strings.TrimRight(viper.GetString("server"), "/")

	payload, err := json.Marshal(quoteRequest{
		FromAsset:     fromAsset,
		ToAsset:       toAsset,
		FromWalletRef: fromWallet,
		ToWalletRef:   toWallet,
		NativeAmount:  amount,
		Direction:     direction,
	})
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if verbose {
		fmt.Printf("\nDebug: POST %s/swap/quote %s\n", server, payload)
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	if !jsonOutput {
		s.Suffix = " Creating swap quote..."
		s.Start()
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	resp, err := httpClient.Post(server+"/swap/quote", "application/json", bytes.NewReader(payload))
	if !jsonOutput {
		s.Stop()
	}
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			color.Red("\nSwap failed: %s", apiErr.Error)
			switch apiErr.Kind {
			case "below_limit":
				color.Yellow("Minimum amount in native units: %s\n", apiErr.Limit)
			case "above_limit":
				color.Yellow("Maximum amount in native units: %s\n", apiErr.Limit)
			case "geo_restricted":
				color.Yellow("The provider does not serve this region.\n")
			}
			os.Exit(1)
		}
		color.Red("\nSwap failed: HTTP %d\n", resp.StatusCode)
		os.Exit(1)
	}

	if jsonOutput {
		fmt.Println(string(body))
		return
	}

	var out quoteResponse
	if err := json.Unmarshal(body, &out); err != nil {
		printError(err)
		os.Exit(1)
	}

	color.Green("\nSwap order %s created", out.OrderID)
	fmt.Printf("  Provider:    %s\n", out.Provider)
	fmt.Printf("  Send:        %s %s\n", out.FromNativeAmount, strings.ToUpper(fromAsset))
	fmt.Printf("  Receive:     %s %s\n", out.ToNativeAmount, strings.ToUpper(toAsset))
	fmt.Printf("  Payout to:   %s\n", out.DestinationAddress)
	fmt.Printf("  Funding tx:  %s\n", out.TxID)
	fmt.Printf("  Expires:     %s\n", out.ExpiresAt.Format(time.RFC3339))
	fmt.Println("\nThe deposit is funded from the source wallet; the provider settles automatically.")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
