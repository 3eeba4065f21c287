package postgres

import (
	"encoding/json"

	"github.com/jackc/pgx/v5"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

// PostSchema maps domain.Post onto clm.posts.
func PostSchema() Schema[domain.Post] {
	return Schema[domain.Post]{
		Table: "clm.posts",
		PK:    "id",
		Columns: []string{
			"id",
			"title",
			"slug",
			"body",
			"author_id",
			"category_id",
			"published_at",
			"created_at",
			"updated_at",
		},
		Scan: func(row pgx.Row) (domain.Post, error) {
			var post domain.Post
			err := row.Scan(
				&post.ID,
				&post.Title,
				&post.Slug,
				&post.Body,
				&post.AuthorID,
				&post.CategoryID,
				&post.PublishedAt,
				&post.CreatedAt,
				&post.UpdatedAt,
			)
			return post, err
		},
		Values: func(post domain.Post) []any {
			return []any{
				post.ID,
				post.Title,
				post.Slug,
				post.Body,
				post.AuthorID,
				post.CategoryID,
				post.PublishedAt,
				post.CreatedAt,
				post.UpdatedAt,
			}
		},
	}
}

// CategorySchema maps domain.Category onto clm.categories.
func CategorySchema() Schema[domain.Category] {
	return Schema[domain.Category]{
		Table: "clm.categories",
		PK:    "id",
		Columns: []string{
			"id",
			"name",
			"slug",
			"created_at",
		},
		Scan: func(row pgx.Row) (domain.Category, error) {
			var cat domain.Category
			err := row.Scan(
				&cat.ID,
				&cat.Name,
				&cat.Slug,
				&cat.CreatedAt,
			)
			return cat, err
		},
		Values: func(cat domain.Category) []any {
			return []any{
				cat.ID,
				cat.Name,
				cat.Slug,
				cat.CreatedAt,
			}
		},
	}
}

// SystemConfigSchema maps domain.SystemConfig onto clm.system_configs.
func SystemConfigSchema() Schema[domain.SystemConfig] {
	return Schema[domain.SystemConfig]{
		Table: "clm.system_configs",
		PK:    "id",
		Columns: []string{
			"id",
			"key",
			"value",
			"created_at",
			"updated_at",
		},
		Scan: func(row pgx.Row) (domain.SystemConfig, error) {
			var cfg domain.SystemConfig
			err := row.Scan(
				&cfg.ID,
				&cfg.Key,
				&cfg.Value,
				&cfg.CreatedAt,
				&cfg.UpdatedAt,
			)
			return cfg, err
		},
		Values: func(cfg domain.SystemConfig) []any {
			return []any{
				cfg.ID,
				cfg.Key,
				cfg.Value,
				cfg.CreatedAt,
				cfg.UpdatedAt,
			}
		},
	}
}

// AuditLogSchema maps domain.AuditLog onto clm.audit_logs. Metadata is
// stored as JSONB.
func AuditLogSchema() Schema[domain.AuditLog] {
	return Schema[domain.AuditLog]{
		Table: "clm.audit_logs",
		PK:    "id",
		Columns: []string{
			"id",
			"actor_id",
			"action",
			"resource",
			"resource_id",
			"metadata",
			"created_at",
		},
		Scan: func(row pgx.Row) (domain.AuditLog, error) {
			var (
				entry    domain.AuditLog
				metadata []byte
			)
			if err := row.Scan(
				&entry.ID,
				&entry.ActorID,
				&entry.Action,
				&entry.Resource,
				&entry.ResourceID,
				&metadata,
				&entry.CreatedAt,
			); err != nil {
				return entry, err
			}
			if len(metadata) > 0 {
				if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
					return entry, err
				}
			}
			return entry, nil
		},
		Values: func(entry domain.AuditLog) []any {
			var metadata []byte
			if len(entry.Metadata) > 0 {
				metadata, _ = json.Marshal(entry.Metadata)
			}
			return []any{
				entry.ID,
				entry.ActorID,
				entry.Action,
				entry.Resource,
				entry.ResourceID,
				metadata,
				entry.CreatedAt,
			}
		},
	}
}
