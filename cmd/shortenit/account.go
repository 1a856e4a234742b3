package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vadimbarashkov/shortenit/internal/app"
	"github.com/vadimbarashkov/shortenit/internal/entity"
	"github.com/vadimbarashkov/shortenit/internal/usecase"
)

func newAccountCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage API accounts",
	}

	cmd.AddCommand(
		newAccountCreateCmd(opts),
		newAccountSetLimitCmd(opts),
		newAccountDeleteCmd(opts),
	)

	return cmd
}

// withAccounts runs fn against the account use case backed by the configured database.
func withAccounts(ctx context.Context, opts *rootOptions, fn func(uc *usecase.AccountUseCase) error) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	db, err := app.ConnectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(app.NewAccountUseCase(db, cfg))
}

func printAccount(w io.Writer, account *entity.Account) {
	fmt.Fprintf(w, "id:          %d\n", account.ID)
	fmt.Fprintf(w, "name:        %s\n", account.Name)
	fmt.Fprintf(w, "daily limit: %d\n", account.DailyLimit)
}

func newAccountCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		name  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account and print its API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 && limit != usecase.UseDefaultDailyLimit {
				return fmt.Errorf("%w: negative daily limit %d", entity.ErrInvalidAccount, limit)
			}

			return withAccounts(cmd.Context(), opts, func(uc *usecase.AccountUseCase) error {
				account, err := uc.CreateAccount(cmd.Context(), name, limit)
				if err != nil {
					return err
				}

				printAccount(cmd.OutOrStdout(), account)
				fmt.Fprintf(cmd.OutOrStdout(), "api key:     %s\n", account.APIKey)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "unique account name")
	cmd.Flags().IntVar(&limit, "limit", usecase.UseDefaultDailyLimit, "daily creation limit (default from config)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountSetLimitCmd(opts *rootOptions) *cobra.Command {
	var (
		id    int64
		limit int
	)

	cmd := &cobra.Command{
		Use:   "set-limit",
		Short: "Change the daily creation limit of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAccounts(cmd.Context(), opts, func(uc *usecase.AccountUseCase) error {
				account, err := uc.SetDailyLimit(cmd.Context(), id, limit)
				if err != nil {
					return err
				}

				printAccount(cmd.OutOrStdout(), account)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "account id")
	cmd.Flags().IntVar(&limit, "limit", 0, "new daily creation limit")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("limit")

	return cmd
}

func newAccountDeleteCmd(opts *rootOptions) *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account with its URLs and access log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAccounts(cmd.Context(), opts, func(uc *usecase.AccountUseCase) error {
				if err := uc.DeleteAccount(cmd.Context(), id); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "account %d deleted\n", id)
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "account id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}
