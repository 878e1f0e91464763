package main

import (
	"fmt"

	"warmup/internal/client"

	"github.com/spf13/cobra"
)

func newRegisterCmd() *cobra.Command {
	var email, password, plan string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and start checkout for a plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.ValidateRegistration(email, password); err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}

			user, err := c.Register(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s\n", user.Email)

			if plan == "" {
				return nil
			}

			checkout, err := c.CreateCheckout(cmd.Context(), plan)
			if err != nil {
				return err
			}
			fmt.Printf("Complete your payment here:\n%s\n", checkout.URL)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&plan, "plan", "", "Plan to purchase (one_time, starter, growth)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			user, err := c.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Signed in as %s\n", user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			if err := c.Logout(); err != nil {
				return err
			}
			fmt.Println("Signed out")
			return nil
		},
	}
}
