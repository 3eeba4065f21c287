package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

// OrganizationSchema maps domain.Organization onto clm.organizations.
func OrganizationSchema() Schema[domain.Organization] {
	return Schema[domain.Organization]{
		Table: "clm.organizations",
		PK:    "id",
		Columns: []string{
			"id",
			"name",
			"slug",
			"owner_id",
			"created_at",
			"updated_at",
		},
		Scan: func(row pgx.Row) (domain.Organization, error) {
			var org domain.Organization
			err := row.Scan(
				&org.ID,
				&org.Name,
				&org.Slug,
				&org.OwnerID,
				&org.CreatedAt,
				&org.UpdatedAt,
			)
			return org, err
		},
		Values: func(org domain.Organization) []any {
			return []any{
				org.ID,
				org.Name,
				org.Slug,
				org.OwnerID,
				org.CreatedAt,
				org.UpdatedAt,
			}
		},
	}
}

// MemberSchema maps domain.Member onto clm.members.
func MemberSchema() Schema[domain.Member] {
	return Schema[domain.Member]{
		Table: "clm.members",
		PK:    "id",
		Columns: []string{
			"id",
			"organization_id",
			"user_id",
			"role",
			"created_at",
		},
		Scan: func(row pgx.Row) (domain.Member, error) {
			var member domain.Member
			err := row.Scan(
				&member.ID,
				&member.OrganizationID,
				&member.UserID,
				&member.Role,
				&member.CreatedAt,
			)
			return member, err
		},
		Values: func(member domain.Member) []any {
			return []any{
				member.ID,
				member.OrganizationID,
				member.UserID,
				member.Role,
				member.CreatedAt,
			}
		},
	}
}

// WalletSchema maps domain.Wallet onto clm.wallets.
func WalletSchema() Schema[domain.Wallet] {
	return Schema[domain.Wallet]{
		Table: "clm.wallets",
		PK:    "id",
		Columns: []string{
			"id",
			"user_id",
			"address",
			"chain_id",
			"label",
			"created_at",
		},
		Scan: func(row pgx.Row) (domain.Wallet, error) {
			var wallet domain.Wallet
			err := row.Scan(
				&wallet.ID,
				&wallet.UserID,
				&wallet.Address,
				&wallet.ChainID,
				&wallet.Label,
				&wallet.CreatedAt,
			)
			return wallet, err
		},
		Values: func(wallet domain.Wallet) []any {
			return []any{
				wallet.ID,
				wallet.UserID,
				wallet.Address,
				wallet.ChainID,
				wallet.Label,
				wallet.CreatedAt,
			}
		},
	}
}
