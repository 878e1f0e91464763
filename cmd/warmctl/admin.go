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

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations",
	}
	cmd.AddCommand(
		newAdminLoginCmd(),
		newAdminDashboardCmd(),
		newAdminOrderCmd(),
		newAdminAccountCmd(),
		newAdminUserCmd(),
		newAdminCreateAdminCmd(),
		newAdminChangePasswordCmd(),
	)
	return cmd
}

// adminDispatcher guards the admin role, then returns the client and
// dispatcher admin subcommands work through.
func adminDispatcher(cmd *cobra.Command) (*client.Client, *client.Dispatcher, error) {
	c, err := newClient()
	if err != nil {
		return nil, nil, err
	}

	guard := client.NewGuard(c)
	state, _, err := guard.Check(cmd.Context(), client.RoleAdmin)
	if err != nil {
		return nil, nil, err
	}
	switch state {
	case client.Unauthenticated:
		return nil, nil, errors.New("Not signed in. Run: warmctl admin login")
	case client.Forbidden:
		return nil, nil, errors.New("Access denied. Admin credentials required.")
	}

	return c, client.NewDispatcher(c, client.NewLoader(c)), nil
}

func newAdminLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with admin credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			user, err := c.AdminLogin(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s (admin)\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newAdminDashboardCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show all users, orders, and accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			snap, err := client.NewLoader(c).Load(cmd.Context(), client.RoleAdmin)
			if err != nil {
				if errors.Is(err, client.ErrUnauthorized) {
					return errors.New("Session expired. Run: warmctl admin login")
				}
				return err
			}

			stats, err := c.Stats(cmd.Context())
			if err == nil {
				fmt.Printf("Users: %d  Orders: %d  Paid: %d  Revenue: %s  Warming: %d  Completed: %d\n\n",
					stats.TotalUsers, stats.TotalOrders, stats.PaidOrders,
					formatAmount(stats.TotalRevenue), stats.ActiveAccounts, stats.CompletedAccounts)
			}

			renderOrders(client.FilterOrders(snap.Orders, search), true)
			fmt.Println()
			renderAccounts(client.FilterAccounts(snap.Accounts, search), true)
			fmt.Println()
			renderUsers(snap.Users)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Filter orders and accounts by email, plan, or username")
	return cmd
}

func newAdminOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Manage orders",
	}

	var status string
	setStatus := &cobra.Command{
		Use:   "set-status <order-id>",
		Short: "Set an order's status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !models.ValidOrderStatus(status) {
				return errors.New("Invalid status")
			}

			_, dispatcher, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			snap, err := dispatcher.UpdateOrderStatus(cmd.Context(), orderID, status)
			if err != nil {
				return err
			}
			renderOrders(snap.Orders, true)
			return nil
		},
	}
	setStatus.Flags().StringVar(&status, "status", "", "pending, paid, warming, completed, or failed")
	setStatus.MarkFlagRequired("status")

	var (
		userID        int
		plan          string
		paymentMethod string
		newEmail      string
		newPassword   string
		createNew     bool
	)
	manual := &cobra.Command{
		Use:   "manual",
		Short: "Create a paid order outside the payment processor",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ValidateManualOrderForm(userID, createNew, newEmail, newPassword); err != nil {
				return err
			}
			if !models.ValidPlan(plan) {
				return errors.New("Invalid plan")
			}

			_, dispatcher, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			snap, err := dispatcher.CreateManualOrder(cmd.Context(), &models.ManualOrderRequest{
				UserID:        userID,
				Plan:          plan,
				PaymentMethod: paymentMethod,
				CreateNewUser: createNew,
				Email:         newEmail,
				Password:      newPassword,
			})
			if err != nil {
				return err
			}
			fmt.Println("Order created")
			renderOrders(snap.Orders, true)
			return nil
		},
	}
	manual.Flags().IntVar(&userID, "user-id", 0, "Existing user ID")
	manual.Flags().StringVar(&plan, "plan", "", "one_time, starter, or growth")
	manual.Flags().StringVar(&paymentMethod, "payment-method", "crypto", "Payment method label")
	manual.Flags().BoolVar(&createNew, "new-user", false, "Create a new user for this order")
	manual.Flags().StringVar(&newEmail, "email", "", "New user email (with --new-user)")
	manual.Flags().StringVar(&newPassword, "password", "", "New user password (with --new-user)")
	manual.MarkFlagRequired("plan")

	cmd.AddCommand(setStatus, manual)
	return cmd
}

func newAdminAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage Instagram accounts",
	}

	var (
		userID   int
		username string
		niche    string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an account on behalf of a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ValidateAdminAccountForm(userID, username, niche); err != nil {
				return err
			}

			_, dispatcher, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			snap, err := dispatcher.AdminAddAccount(cmd.Context(), &models.CreateAccountRequest{
				UserID:   userID,
				Username: username,
				Niche:    niche,
			})
			if err != nil {
				return err
			}
			fmt.Println("Account added")
			renderAccounts(snap.Accounts, true)
			return nil
		},
	}
	add.Flags().IntVar(&userID, "user-id", 0, "Owner user ID")
	add.Flags().StringVar(&username, "username", "", "Instagram username")
	add.Flags().StringVar(&niche, "niche", "", "Account niche")
	add.MarkFlagRequired("user-id")
	add.MarkFlagRequired("username")

	var (
		status     string
		currentDay int
		progress   int
	)
	update := &cobra.Command{
		Use:   "update <account-id>",
		Short: "Update an account's warming state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := parseID(args[0])
			if err != nil {
				return err
			}

			upd := &models.AccountUpdate{}
			if cmd.Flags().Changed("status") {
				if !models.ValidAccountStatus(status) {
					return errors.New("Invalid status")
				}
				upd.Status = &status
			}
			if cmd.Flags().Changed("day") {
				upd.CurrentDay = &currentDay
			}
			if cmd.Flags().Changed("progress") {
				upd.ProgressPercentage = &progress
			}

			_, dispatcher, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			snap, err := dispatcher.UpdateAccount(cmd.Context(), accountID, upd)
			if err != nil {
				return err
			}
			renderAccounts(snap.Accounts, true)
			return nil
		},
	}
	update.Flags().StringVar(&status, "status", "", "pending, warming, completed, or paused")
	update.Flags().IntVar(&currentDay, "day", 0, "Current warming day (1-5)")
	update.Flags().IntVar(&progress, "progress", 0, "Progress percentage")

	del := &cobra.Command{
		Use:   "delete <account-id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !confirm("Are you sure you want to delete this account?") {
				fmt.Println("Cancelled")
				return nil
			}

			_, dispatcher, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			snap, err := dispatcher.DeleteAccount(cmd.Context(), accountID)
			if err != nil {
				return err
			}
			fmt.Println("Account deleted")
			renderAccounts(snap.Accounts, true)
			return nil
		},
	}

	cmd.AddCommand(add, update, del)
	return cmd
}

func newAdminUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	del := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user and all their orders and accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !confirm("Delete this user and all of their orders and accounts?") {
				fmt.Println("Cancelled")
				return nil
			}

			_, dispatcher, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			snap, err := dispatcher.DeleteUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Println("User deleted")
			renderUsers(snap.Users)
			return nil
		},
	}

	cmd.AddCommand(del)
	return cmd
}

func newAdminCreateAdminCmd() *cobra.Command {
	var email, password, confirmPassword string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create another admin user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ValidatePassword(password, confirmPassword); err != nil {
				return err
			}
			if err := client.ValidateRegistration(email, password); err != nil {
				return err
			}

			_, dispatcher, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			if _, err := dispatcher.CreateAdmin(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Printf("Admin %s created\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "New admin email")
	cmd.Flags().StringVar(&password, "password", "", "Password (min 8 characters)")
	cmd.Flags().StringVar(&confirmPassword, "confirm", "", "Password confirmation")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("confirm")
	return cmd
}

func newAdminChangePasswordCmd() *cobra.Command {
	var password, confirmPassword string

	cmd := &cobra.Command{
		Use:   "change-password",
		Short: "Change your own admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ValidatePassword(password, confirmPassword); err != nil {
				return err
			}

			_, dispatcher, err := adminDispatcher(cmd)
			if err != nil {
				return err
			}

			if _, err := dispatcher.ChangeAdminPassword(cmd.Context(), password); err != nil {
				return err
			}
			fmt.Println("Password changed successfully")
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "New password (min 8 characters)")
	cmd.Flags().StringVar(&confirmPassword, "confirm", "", "Password confirmation")
	cmd.MarkFlagRequired("password")
	cmd.MarkFlagRequired("confirm")
	return cmd
}

func renderUsers(users []models.User) {
	fmt.Println("Users")
	if len(users) == 0 {
		fmt.Println("  (none)")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tEMAIL\tROLE\tJOINED")
	for _, u := range users {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, u.CreatedAt.Format("2006-01-02"))
	}
	w.Flush()
}

func parseID(s string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(s, "%d", &id); err != nil || id <= 0 {
		return 0, errors.New("Invalid ID")
	}
	return id, nil
}
