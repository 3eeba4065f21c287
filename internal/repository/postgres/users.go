package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

// UserSchema maps domain.User onto clm.users.
func UserSchema() Schema[domain.User] {
	return Schema[domain.User]{
		Table: "clm.users",
		PK:    "id",
		Columns: []string{
			"id",
			"name",
			"email",
			"password_hash",
			"role",
			"wallet_address",
			"created_at",
			"updated_at",
		},
		Scan: func(row pgx.Row) (domain.User, error) {
			var user domain.User
			err := row.Scan(
				&user.ID,
				&user.Name,
				&user.Email,
				&user.PasswordHash,
				&user.Role,
				&user.WalletAddress,
				&user.CreatedAt,
				&user.UpdatedAt,
			)
			return user, err
		},
		Values: func(user domain.User) []any {
			return []any{
				user.ID,
				user.Name,
				user.Email,
				user.PasswordHash,
				user.Role,
				user.WalletAddress,
				user.CreatedAt,
				user.UpdatedAt,
			}
		},
	}
}
