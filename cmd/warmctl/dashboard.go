package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"warmup/internal/client"
	"warmup/internal/models"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your orders and Instagram accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			guard := client.NewGuard(c)
			state, _, err := guard.Check(cmd.Context(), client.RoleClient)
			if err != nil {
				return err
			}
			if state != client.Authorized {
				return errors.New("Not signed in. Run: warmctl login")
			}

			loader := client.NewLoader(c)
			snap, err := loader.Load(cmd.Context(), client.RoleClient)
			if err != nil {
				if errors.Is(err, client.ErrUnauthorized) {
					return errors.New("Session expired. Run: warmctl login")
				}
				return err
			}

			fmt.Printf("Signed in as %s\n\n", snap.User.Email)
			renderOrders(snap.Orders, false)
			fmt.Println()
			renderAccounts(snap.Accounts, false)

			if snap.HasPaidOrder() {
				fmt.Println("\nAdd an Instagram account with: warmctl account add")
			} else if len(snap.Orders) == 0 {
				fmt.Println("\nNo plan selected yet")
			}
			return nil
		},
	}
}

func newAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your Instagram accounts",
	}
	cmd.AddCommand(newAccountAddCmd())
	return cmd
}

func newAccountAddCmd() *cobra.Command {
	var username, niche string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an Instagram account for warming",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ValidateAccountForm(username, niche); err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			dispatcher := client.NewDispatcher(c, client.NewLoader(c))
			snap, err := dispatcher.AddAccount(cmd.Context(), username, niche)
			if err != nil {
				return err
			}

			fmt.Println("Account added")
			renderAccounts(snap.Accounts, false)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Instagram username")
	cmd.Flags().StringVar(&niche, "niche", "", "Account niche (e.g. fitness, tech, crypto)")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("niche")
	return cmd
}

func renderOrders(orders []models.Order, withEmail bool) {
	fmt.Println("Orders")
	if len(orders) == 0 {
		fmt.Println("  (none)")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if withEmail {
		fmt.Fprintln(w, "  ID\tUSER\tPLAN\tAMOUNT\tSTATUS\tCREATED")
		for _, o := range orders {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\t%s\n",
				o.ID, o.UserEmail, o.Plan, formatAmount(o.Amount), o.Status, o.CreatedAt.Format("2006-01-02"))
		}
	} else {
		fmt.Fprintln(w, "  ID\tPLAN\tAMOUNT\tSTATUS\tCREATED")
		for _, o := range orders {
			fmt.Fprintf(w, "  %d\t%s\t%s\t%s\t%s\n",
				o.ID, o.Plan, formatAmount(o.Amount), o.Status, o.CreatedAt.Format("2006-01-02"))
		}
	}
	w.Flush()
}

func renderAccounts(accounts []models.Account, withEmail bool) {
	fmt.Println("Instagram accounts")
	if len(accounts) == 0 {
		fmt.Println("  (none)")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if withEmail {
		fmt.Fprintln(w, "  ID\tUSERNAME\tUSER\tNICHE\tSTATUS\tPROGRESS")
		for _, a := range accounts {
			fmt.Fprintf(w, "  %d\t@%s\t%s\t%s\t%s\t%s\n",
				a.ID, a.Username, a.UserEmail, a.Niche, a.Status, progress(a))
		}
	} else {
		fmt.Fprintln(w, "  ID\tUSERNAME\tNICHE\tSTATUS\tPROGRESS")
		for _, a := range accounts {
			fmt.Fprintf(w, "  %d\t@%s\t%s\t%s\t%s\n",
				a.ID, a.Username, a.Niche, a.Status, progress(a))
		}
	}
	w.Flush()
}

func progress(a models.Account) string {
	if a.CurrentDay == 0 {
		return "-"
	}
	return fmt.Sprintf("day %d/5, %d%%", a.CurrentDay, a.ProgressPercentage)
}
