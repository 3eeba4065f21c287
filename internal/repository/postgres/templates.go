package postgres

import (
	"github.com/jackc/pgx/v5"

	"github.com/covenantlab/contract-platform/internal/core/domain"
)

// ContractTemplateSchema maps domain.ContractTemplate onto
// clm.contract_templates.
func ContractTemplateSchema() Schema[domain.ContractTemplate] {
	return Schema[domain.ContractTemplate]{
		Table: "clm.contract_templates",
		PK:    "id",
		Columns: []string{
			"id",
			"name",
			"description",
			"category",
			"created_at",
			"updated_at",
		},
		Scan: func(row pgx.Row) (domain.ContractTemplate, error) {
			var tpl domain.ContractTemplate
			err := row.Scan(
				&tpl.ID,
				&tpl.Name,
				&tpl.Description,
				&tpl.Category,
				&tpl.CreatedAt,
				&tpl.UpdatedAt,
			)
			return tpl, err
		},
		Values: func(tpl domain.ContractTemplate) []any {
			return []any{
				tpl.ID,
				tpl.Name,
				tpl.Description,
				tpl.Category,
				tpl.CreatedAt,
				tpl.UpdatedAt,
			}
		},
	}
}

// TemplateVersionSchema maps domain.TemplateVersion onto
// clm.template_versions.
func TemplateVersionSchema() Schema[domain.TemplateVersion] {
	return Schema[domain.TemplateVersion]{
		Table: "clm.template_versions",
		PK:    "id",
		Columns: []string{
			"id",
			"template_id",
			"version",
			"content",
			"published_at",
			"created_at",
		},
		Scan: func(row pgx.Row) (domain.TemplateVersion, error) {
			var ver domain.TemplateVersion
			err := row.Scan(
				&ver.ID,
				&ver.TemplateID,
				&ver.Version,
				&ver.Content,
				&ver.PublishedAt,
				&ver.CreatedAt,
			)
			return ver, err
		},
		Values: func(ver domain.TemplateVersion) []any {
			return []any{
				ver.ID,
				ver.TemplateID,
				ver.Version,
				ver.Content,
				ver.PublishedAt,
				ver.CreatedAt,
			}
		},
	}
}
