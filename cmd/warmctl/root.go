package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"warmup/internal/client"
	"warmup/internal/logger"

	"github.com/spf13/cobra"
)

var apiURL string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "warmctl",
		Short:         "Command-line dashboard for the warmup service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultURL := os.Getenv("WARMUP_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&apiURL, "api-url", defaultURL, "Base URL of the warmup API")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newDashboardCmd(),
		newAccountCmd(),
		newAdminCmd(),
	)
	return root
}

func newClient() (*client.Client, error) {
	store, err := client.NewFileTokenStore()
	if err != nil {
		return nil, err
	}
	session := client.NewSession(store)
	log := logger.InitLogger()
	return client.New(apiURL, session, log), nil
}

// confirm asks a yes/no question on stdin; anything but y/yes is a
// refusal.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// formatAmount renders integer cents as dollars, dividing by 100
// exactly once.
func formatAmount(cents int) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
